package models

import "time"

type Highlight struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Image       string     `json:"image_url,omitempty" bson:"image_url,omitempty"`
	EntityType  EntityType `json:"entity_type,omitempty" bson:"entity_type,omitempty"`
	EntityID    string     `json:"entity_id,omitempty" bson:"entity_id,omitempty"`
	Location    *GeoPoint  `json:"location,omitempty" bson:"location,omitempty"`
	Priority    int        `json:"priority" bson:"priority"`
	Active      bool       `json:"is_active" bson:"is_active"`
	Status      string     `json:"status" bson:"status"`
	StartsAt    *time.Time `json:"starts_at,omitempty" bson:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty" bson:"ends_at,omitempty"`
}

type District struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Slug         string    `json:"slug,omitempty" bson:"slug,omitempty"`
	Overview     string    `json:"overview,omitempty" bson:"overview,omitempty"`
	Image        string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Region       string    `json:"region,omitempty" bson:"region,omitempty"`
	Status       string    `json:"status" bson:"status"`
	VillageCount int       `json:"village_count,omitempty" bson:"village_count,omitempty"`
	Location     *GeoPoint `json:"location,omitempty" bson:"location,omitempty"`
}

const StatusPublished = "published"
