// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dkhasanov/appletd/internal/jsonld"
	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/store"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ErrUnresolvableComponent is returned when a component URL matches no stored
// folder and its body cannot be fetched or parsed.
var ErrUnresolvableComponent = errors.New("cannot resolve component")

// ImportService resolves component URLs for the formatter and writes its
// caches back. Stored folders are preferred; URLs nothing in storage matches
// are dereferenced over HTTP and kept transient, they are not persisted as
// folders.
type ImportService struct {
	folders store.FolderRepository
	client  *resty.Client
	cfg     jsonld.Config
}

func NewImportService(folders store.FolderRepository, client *resty.Client, cfg jsonld.Config) *ImportService {
	return &ImportService{folders: folders, client: client, cfg: cfg}
}

// ResolveComponent finds the document behind a component URL. The folder
// whose metadata declares the URL wins; otherwise the URL is fetched and the
// body's @type decides the component type.
func (s *ImportService) ResolveComponent(ctx context.Context, url string) (*jsonld.Document, string, error) {
	for _, mesoType := range s.cfg.Hierarchy {
		folder, err := s.folders.FindFolderByMetaURL(ctx, mesoType, url)
		if errors.Is(err, store.ErrFolderNotFound) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return &jsonld.Document{
			ID:     folder.FolderID.String(),
			Meta:   folder.Meta,
			Cached: folder.Cached,
		}, mesoType, nil
	}

	return s.fetchComponent(ctx, url)
}

// fetchComponent dereferences a component URL and builds a transient
// document from the response body. The URL doubles as the document ID.
func (s *ImportService) fetchComponent(ctx context.Context, url string) (*jsonld.Document, string, error) {
	log := logger.FromContext(ctx)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/ld+json, application/json").
		Get(url)
	if err != nil {
		return nil, "", errors.Join(ErrUnresolvableComponent, err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("%w: %s returned %s", ErrUnresolvableComponent, url, resp.Status())
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, "", errors.Join(ErrUnresolvableComponent, err)
	}

	mesoType := s.componentType(body)
	if mesoType == "" {
		log.Debug().Str("func", "fetchComponent").Str("url", url).
			Msg("component body declares no recognized @type")
		return nil, "", fmt.Errorf("%w: %s has no recognized type", ErrUnresolvableComponent, url)
	}

	return &jsonld.Document{
		ID:   url,
		Meta: map[string]any{mesoType: body},
	}, mesoType, nil
}

// componentType maps the body's @type IRI to one of the configured entity
// types. Field-typed documents count as screens.
func (s *ImportService) componentType(body map[string]any) string {
	raw, _ := body["@type"].(string)
	if raw == "" {
		if list, ok := body["@type"].([]any); ok && len(list) > 0 {
			raw, _ = list[0].(string)
		}
	}
	if raw == "" {
		return ""
	}

	segments := strings.Split(raw, "/")
	name := lowerFirst(segments[len(segments)-1])
	if name == "field" {
		return jsonld.TypeScreen
	}
	for _, mesoType := range s.cfg.Hierarchy {
		if name == mesoType {
			return mesoType
		}
	}
	return ""
}

// WriteCache persists a formatted representation onto the folder it came
// from. Transient documents, whose IDs are URLs rather than folder IDs, are
// skipped, there is no row to write to.
func (s *ImportService) WriteCache(ctx context.Context, docID string, cached map[string]any) error {
	folderID, err := uuid.Parse(docID)
	if err != nil {
		return nil
	}
	return s.folders.UpdateCached(ctx, folderID, cached)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
