// Package storage archive les reçus de commande dans MinIO.
package storage

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const ReceiptURLTTL = 15 * time.Minute

type MinIOReceipts struct {
	client *minio.Client
	bucket string
}

func NewMinIOReceipts(client *minio.Client, bucket string) *MinIOReceipts {
	return &MinIOReceipts{client: client, bucket: bucket}
}

func ReceiptObject(orderID string) string {
	return "receipts/" + orderID + ".html"
}

func (s *MinIOReceipts) Put(ctx context.Context, orderID string, html []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, ReceiptObject(orderID), bytes.NewReader(html), int64(len(html)),
		minio.PutObjectOptions{ContentType: "text/html; charset=utf-8"})
	return errors.Wrap(err, "upload reçu")
}

// URL génère une URL signée à durée limitée
func (s *MinIOReceipts) URL(ctx context.Context, orderID string) (string, error) {
	reqParams := make(url.Values)
	reqParams.Set("response-content-disposition", "inline; filename=\"recu-"+orderID+".html\"")
	u, err := s.client.PresignedGetObject(ctx, s.bucket, ReceiptObject(orderID), ReceiptURLTTL, reqParams)
	if err != nil {
		return "", errors.Wrap(err, "URL signée reçu")
	}
	return u.String(), nil
}

func (s *MinIOReceipts) Delete(ctx context.Context, orderID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, ReceiptObject(orderID), minio.RemoveObjectOptions{})
	return errors.Wrap(err, "suppression reçu")
}
