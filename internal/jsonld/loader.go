// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"bytes"
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/piprate/json-gold/ld"
	"github.com/rs/zerolog"
)

// CachingDocumentLoader dereferences remote JSON-LD documents over HTTP and
// serves repeat requests from a ContextCache. It satisfies
// ld.DocumentLoader.
type CachingDocumentLoader struct {
	client *resty.Client
	cache  ContextCache
	logger *zerolog.Logger
}

func NewCachingDocumentLoader(client *resty.Client, cache ContextCache, logger *zerolog.Logger) *CachingDocumentLoader {
	return &CachingDocumentLoader{client: client, cache: cache, logger: logger}
}

func (l *CachingDocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	ctx := context.Background()

	if body, err := l.cache.Get(ctx, u); err == nil {
		return l.parse(u, body)
	}

	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/ld+json, application/json").
		Get(u)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingRemoteContextFailed, err)
	}
	if resp.IsError() {
		return nil, ld.NewJsonLdError(ld.LoadingRemoteContextFailed, resp.Status())
	}

	body := resp.Body()
	if err := l.cache.Set(ctx, u, body); err != nil {
		l.logger.Warn().Str("func", "LoadDocument").Str("url", u).Err(err).
			Msg("cannot cache context document")
	}

	return l.parse(u, body)
}

func (l *CachingDocumentLoader) parse(u string, body []byte) (*ld.RemoteDocument, error) {
	doc, err := ld.DocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingRemoteContextFailed, err)
	}
	return &ld.RemoteDocument{DocumentURL: u, Document: doc}, nil
}
