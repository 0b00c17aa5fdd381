package storefront

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"storefront_back_end/internal/logger"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/pricing"
)

// reconcileAttempts borne les relectures quand des mutations arrivent pendant la relecture
const reconcileAttempts = 3

type mutation struct {
	change int
	remove bool
}

// itemQueue : mutations en attente pour une ligne, envoyées une par une
type itemQueue struct {
	ops []mutation
}

// CartStore est la vue locale du panier. Les changements de quantité et les
// suppressions sont appliqués tout de suite en local puis envoyés au serveur
// dans l'ordre, un worker par ligne. Un échec est signalé sur Errors() et
// déclenche une relecture du panier serveur dès que les files sont vides.
type CartStore struct {
	api     API
	onError func(error)
	errs    chan error

	mu     sync.Mutex
	items  []models.CartItem
	queues map[string]*itemQueue
	active int
	idle   chan struct{}
	// gen est incrémenté à chaque mutation mise en file
	gen   uint64
	dirty bool
	// frozen : un passage de commande est en cours, aucune mutation acceptée
	frozen bool
}

type CartOption func(*CartStore)

// WithErrorHandler est appelé (depuis un worker) pour chaque mutation échouée
func WithErrorHandler(fn func(error)) CartOption {
	return func(s *CartStore) {
		s.onError = fn
	}
}

func NewCartStore(api API, opts ...CartOption) *CartStore {
	idle := make(chan struct{})
	close(idle)
	s := &CartStore{
		api:    api,
		errs:   make(chan error, 32),
		queues: make(map[string]*itemQueue),
		idle:   idle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Errors : échecs de synchronisation. Le canal est borné, les erreurs en trop sont perdues.
func (s *CartStore) Errors() <-chan error {
	return s.errs
}

// Load remplace l'état local par le panier serveur
func (s *CartStore) Load(ctx context.Context) error {
	items, err := s.api.FetchCart(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = models.CloneItems(items)
	s.mu.Unlock()
	return nil
}

// AddItem n'ajoute la ligne en local qu'après confirmation, avec l'ID attribué
// par le serveur. Le serveur fusionne une ligne de même produit et même taille.
func (s *CartStore) AddItem(ctx context.Context, req AddItemRequest) (models.CartItem, error) {
	s.mu.Lock()
	if s.frozen {
		s.mu.Unlock()
		return models.CartItem{}, ErrCartFrozen
	}
	// compté comme une mutation en vol : Flush l'attend
	s.beginLocked()
	s.mu.Unlock()
	defer s.done()

	item, err := s.api.AddCartItem(ctx, req)
	if err != nil {
		return models.CartItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i] = item
	} else {
		s.items = append(s.items, item)
	}
	return item, nil
}

func (s *CartStore) IncreaseQuantity(ctx context.Context, itemID string) error {
	return s.changeQuantity(ctx, itemID, 1)
}

func (s *CartStore) DecreaseQuantity(ctx context.Context, itemID string) error {
	return s.changeQuantity(ctx, itemID, -1)
}

// changeQuantity : aux bornes [1, 10] l'appel ne fait rien et n'envoie rien
func (s *CartStore) changeQuantity(ctx context.Context, itemID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return ErrCartFrozen
	}
	i := s.indexOf(itemID)
	if i < 0 {
		return ErrUnknownItem
	}
	next := models.ClampQuantity(s.items[i].Quantity + delta)
	if next == s.items[i].Quantity {
		return nil
	}
	s.items[i].Quantity = next
	s.enqueueLocked(ctx, itemID, mutation{change: delta})
	return nil
}

func (s *CartStore) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return ErrCartFrozen
	}
	i := s.indexOf(itemID)
	if i < 0 {
		return ErrUnknownItem
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.enqueueLocked(ctx, itemID, mutation{remove: true})
	return nil
}

// Frozen : vrai pendant un passage de commande (boutons +/- à désactiver)
func (s *CartStore) Frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frozen
}

// freeze refuse toute nouvelle mutation jusqu'à unfreeze. Les mutations déjà
// en file continuent : Flush les attend.
func (s *CartStore) freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

func (s *CartStore) unfreeze() {
	s.mu.Lock()
	s.frozen = false
	s.mu.Unlock()
}

// Flush attend que toutes les mutations en file (et l'éventuelle relecture) soient terminées
func (s *CartStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneItems(s.items)
}

// Totals est toujours recalculé depuis les lignes courantes
func (s *CartStore) Totals() pricing.CartTotals {
	return pricing.Calculate(s.Items())
}

// Clear vide l'état local, uniquement après une commande confirmée
func (s *CartStore) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}

func (s *CartStore) indexOf(itemID string) int {
	for i, item := range s.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (s *CartStore) enqueueLocked(ctx context.Context, itemID string, op mutation) {
	s.gen++
	if q, ok := s.queues[itemID]; ok {
		q.ops = append(q.ops, op)
		return
	}
	q := &itemQueue{ops: []mutation{op}}
	s.queues[itemID] = q
	s.beginLocked()
	go s.drain(context.WithoutCancel(ctx), itemID, q)
}

func (s *CartStore) drain(ctx context.Context, itemID string, q *itemQueue) {
	for {
		s.mu.Lock()
		if len(q.ops) == 0 {
			delete(s.queues, itemID)
			reconcile := s.dirty && len(s.queues) == 0
			if reconcile {
				s.dirty = false
			}
			s.mu.Unlock()
			if reconcile {
				s.reconcile(ctx)
			}
			s.done()
			return
		}
		op := q.ops[0]
		q.ops = q.ops[1:]
		s.mu.Unlock()

		if err := s.send(ctx, itemID, op); err != nil {
			logger.L().Warn("⚠️ Synchronisation panier échouée",
				zap.String("item_id", itemID), zap.Error(err))
			s.report(err)
			s.mu.Lock()
			s.dirty = true
			s.mu.Unlock()
		}
	}
}

func (s *CartStore) send(ctx context.Context, itemID string, op mutation) error {
	if op.remove {
		return s.api.RemoveCartItem(ctx, itemID)
	}
	item, err := s.api.ChangeQuantity(ctx, itemID, op.change)
	if err != nil {
		return err
	}
	// La quantité serveur fait foi si plus rien n'est en attente pour cette ligne
	s.mu.Lock()
	if q := s.queues[itemID]; q != nil && len(q.ops) == 0 {
		if i := s.indexOf(itemID); i >= 0 && item.Quantity > 0 {
			s.items[i].Quantity = item.Quantity
		}
	}
	s.mu.Unlock()
	return nil
}

// reconcile relit le panier serveur. Le résultat n'est appliqué que si aucune
// mutation n'a été mise en file pendant la lecture.
func (s *CartStore) reconcile(ctx context.Context) {
	for attempt := 0; attempt < reconcileAttempts; attempt++ {
		s.mu.Lock()
		gen := s.gen
		s.mu.Unlock()

		items, err := s.api.FetchCart(ctx)
		if err != nil {
			logger.L().Warn("⚠️ Relecture du panier impossible", zap.Error(err))
			s.report(err)
			return
		}

		s.mu.Lock()
		switch {
		case len(s.queues) > 0:
			// un worker actif relira à sa sortie
			s.dirty = true
			s.mu.Unlock()
			return
		case gen == s.gen:
			s.items = models.CloneItems(items)
			s.mu.Unlock()
			logger.L().Info("🔄 Panier resynchronisé", zap.Int("items", len(items)))
			return
		}
		s.mu.Unlock()
	}
}

func (s *CartStore) beginLocked() {
	if s.active == 0 {
		s.idle = make(chan struct{})
	}
	s.active++
}

func (s *CartStore) done() {
	s.mu.Lock()
	s.active--
	if s.active == 0 {
		close(s.idle)
	}
	s.mu.Unlock()
}

func (s *CartStore) report(err error) {
	if s.onError != nil {
		s.onError(err)
	}
	select {
	case s.errs <- err:
	default:
	}
}
