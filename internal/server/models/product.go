// Package models defines server-side data models persisted in the database.
package models

import "time"

// ProductAttributes are the descriptive fields of a scan. They are stored
// exactly as supplied.
type ProductAttributes struct {
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	NutritionGrade string `json:"nutrition_grade"`
	NutritionScore int    `json:"nutrition_score"`
	NovaGroup      int    `json:"nova_group"`
	EcoGrade       string `json:"eco_grade"`
	SubmittedOn    string `json:"submitted_on"`
	ImageURL       string `json:"image_url"`
}

// Product is one scanned item submitted by an account.
type Product struct {
	ID        string            `json:"id"`
	CatalogID string            `json:"catalog_id"`
	OwnerID   string            `json:"owner_id"`
	Attrs     ProductAttributes `json:"attributes"`
	CreatedAt time.Time         `json:"created_at"`
}
