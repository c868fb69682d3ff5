package services

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"heritage-map/models"
)

// MetaService resolves share metadata for entities and page URLs. Lookup
// failures never reach the caller; they degrade to site defaults.
type MetaService struct {
	store    EntityStore
	defaults models.SiteDefaults
	logger   arbor.ILogger
}

func NewMetaService(store EntityStore, defaults models.SiteDefaults, logger arbor.ILogger) *MetaService {
	return &MetaService{store: store, defaults: defaults, logger: logger}
}

// siteDefaults prefers the stored settings document and fills gaps from
// the configured defaults.
func (s *MetaService) siteDefaults(ctx context.Context) models.SiteDefaults {
	stored, err := s.store.SiteDefaults(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("action", "resolve_meta").Msg("Failed to load site share settings")
		return s.defaults
	}
	if stored == nil {
		return s.defaults
	}
	return stored.Merge(s.defaults)
}

func (s *MetaService) lookup(ctx context.Context, t models.EntityType, idOrSlug string) *models.EntityContent {
	entity, err := s.store.FindEntityByID(ctx, t, idOrSlug)
	if err != nil {
		s.logger.Warn().Err(err).Str("entity_type", string(t)).Str("entity_id", idOrSlug).Msg("Entity lookup by id failed")
	}
	if entity != nil {
		return entity
	}
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return nil
	}
	entity, err = s.store.FindEntityBySlug(ctx, t, idOrSlug)
	if err != nil {
		s.logger.Warn().Err(err).Str("entity_type", string(t)).Str("slug", idOrSlug).Msg("Entity lookup by slug failed")
		return nil
	}
	return entity
}

// ResolveEntity resolves metadata for one entity by id, or slug when the
// identifier is not a UUID.
func (s *MetaService) ResolveEntity(ctx context.Context, t models.EntityType, idOrSlug string) models.ResolvedMeta {
	defaults := s.siteDefaults(ctx)

	route, ok := RouteFor(t)
	if !ok {
		s.logger.Debug().Str("entity_type", string(t)).Msg("Unknown entity type, using site defaults")
		return Resolve(ResolveInput{EntityType: t}, defaults)
	}

	in := ResolveInput{EntityType: t, CanonicalPath: route.PagePath(nil, idOrSlug)}
	in.Entity = s.lookup(ctx, t, idOrSlug)
	if in.Entity == nil {
		s.logger.Debug().Str("entity_type", string(t)).Str("entity_id", idOrSlug).Msg("Entity not found, using site defaults")
		return Resolve(in, defaults)
	}
	in.CanonicalPath = route.PagePath(in.Entity, idOrSlug)

	override, err := s.store.FindOverride(ctx, t, in.Entity.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("entity_type", string(t)).Str("entity_id", in.Entity.ID).Msg("Share override lookup failed")
	}
	in.Override = override
	return Resolve(in, defaults)
}

// ResolveURL maps a public page URL to its entity. Pages that are not
// entity pages resolve to site defaults with the page as canonical URL.
func (s *MetaService) ResolveURL(ctx context.Context, pageURL string) models.ResolvedMeta {
	u, err := url.Parse(pageURL)
	if err != nil || pageURL == "" {
		return Resolve(ResolveInput{}, s.siteDefaults(ctx))
	}
	if t, id, ok := MatchPagePath(u.Path); ok {
		return s.ResolveEntity(ctx, t, id)
	}
	return Resolve(ResolveInput{CanonicalPath: u.EscapedPath()}, s.siteDefaults(ctx))
}
