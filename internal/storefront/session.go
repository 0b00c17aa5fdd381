package storefront

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"storefront_back_end/internal/models"
)

// Session porte l'utilisateur connecté pour toute la durée de la session.
// L'utilisateur n'est demandé qu'une fois au serveur, les appels concurrents
// partagent la même requête.
type Session struct {
	api API

	group singleflight.Group
	mu    sync.RWMutex
	user  *models.User
}

func NewSession(api API) *Session {
	return &Session{api: api}
}

func (s *Session) User(ctx context.Context) (models.User, error) {
	s.mu.RLock()
	if s.user != nil {
		u := *s.user
		s.mu.RUnlock()
		return u, nil
	}
	s.mu.RUnlock()

	// La requête partagée ne dépend pas du contexte du premier appelant :
	// chacun abandonne l'attente avec son propre contexte.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("me", func() (any, error) {
		s.mu.RLock()
		cached := s.user
		s.mu.RUnlock()
		if cached != nil {
			return *cached, nil
		}
		user, err := s.api.CurrentUser(fetchCtx)
		if err != nil {
			return models.User{}, err
		}
		s.mu.Lock()
		s.user = &user
		s.mu.Unlock()
		return user, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return models.User{}, res.Err
		}
		return res.Val.(models.User), nil
	case <-ctx.Done():
		return models.User{}, ctx.Err()
	}
}

// Invalidate force un nouveau chargement (déconnexion, profil modifié)
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// DeliveryPrefill pré-remplit le formulaire de livraison depuis le profil
func (s *Session) DeliveryPrefill(ctx context.Context) (models.DeliveryInfo, error) {
	user, err := s.User(ctx)
	if err != nil {
		return models.DeliveryInfo{}, err
	}
	return models.DeliveryInfo{
		FullName: user.Name,
		Address:  user.Address,
		Phone:    user.Phone,
	}, nil
}
