// Package search indexe les commandes dans Elasticsearch pour la recherche admin.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"

	"storefront_back_end/internal/models"
)

const OrdersIndex = "orders"

type orderDoc struct {
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Items         []string  `json:"items"`
	Status        string    `json:"status"`
	ReturnStatus  string    `json:"return_status,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

func toDoc(o models.Order) orderDoc {
	doc := orderDoc{
		OrderID:       o.ID,
		UserID:        o.UserID,
		FullName:      o.DeliveryInfo.FullName,
		Phone:         o.DeliveryInfo.Phone,
		Address:       o.DeliveryInfo.Address,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
	}
	for _, item := range o.Items {
		doc.Items = append(doc.Items, strings.TrimSpace(item.Brand+" "+item.Name))
	}
	if o.ReturnStatus != nil {
		doc.ReturnStatus = string(*o.ReturnStatus)
	}
	return doc
}

type ElasticOrders struct {
	es *elasticsearch.Client
}

func NewElasticOrders(es *elasticsearch.Client) *ElasticOrders {
	return &ElasticOrders{es: es}
}

// Index crée ou remplace le document de la commande
func (s *ElasticOrders) Index(ctx context.Context, order models.Order) error {
	data, err := json.Marshal(toDoc(order))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      OrdersIndex,
		DocumentID: order.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	return do(ctx, s.es, req)
}

func (s *ElasticOrders) Delete(ctx context.Context, orderID string) error {
	req := esapi.DeleteRequest{Index: OrdersIndex, DocumentID: orderID}
	return do(ctx, s.es, req)
}

// Search retourne les IDs des commandes correspondant à la recherche plein texte
func (s *ElasticOrders) Search(ctx context.Context, query string) ([]string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody(query)); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{OrdersIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, s.es)
	if err != nil {
		return nil, errors.Wrap(err, "requête Elastic")
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.Errorf("Elastic a renvoyé une erreur: %s", res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}
	ids := make([]string, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func searchBody(query string) map[string]interface{} {
	return map[string]interface{}{
		"size": 100,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"order_id", "full_name^2", "phone", "address", "items", "user_id"},
				"fuzziness": "AUTO",
			},
		},
	}
}

type requester interface {
	Do(ctx context.Context, transport esapi.Transport) (*esapi.Response, error)
}

func do(ctx context.Context, es *elasticsearch.Client, req requester) error {
	res, err := req.Do(ctx, es)
	if err != nil {
		return errors.Wrap(err, "envoi Elastic")
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return errors.Errorf("Elastic a renvoyé une erreur: %s", res.String())
	}
	return nil
}
