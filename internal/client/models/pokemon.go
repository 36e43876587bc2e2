package models

import (
	"strconv"
	"strings"
)

// Page is one page of the catalog listing.
type Page struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []ListItem `json:"results"`
}

// ListItem is a catalog listing row; the numeric id is the last path
// segment of URL.
type ListItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID parses the catalog id out of URL. It returns 0 when URL has no numeric
// trailing segment.
func (li ListItem) ID() int {
	parts := strings.Split(strings.TrimRight(li.URL, "/"), "/")
	id, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return id
}

// NamedResource is the {name, url} pair the catalog uses for references.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Ability struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

type Move struct {
	Move NamedResource `json:"move"`
}

type Stat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type Type struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type Sprites struct {
	BackDefault  *string `json:"back_default"`
	BackShiny    *string `json:"back_shiny"`
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
	Other        *struct {
		OfficialArtwork *struct {
			FrontDefault *string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

// Pokemon is the catalog detail record.
type Pokemon struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Height         int       `json:"height"`
	Weight         int       `json:"weight"`
	BaseExperience *int      `json:"base_experience"`
	Abilities      []Ability `json:"abilities"`
	Moves          []Move    `json:"moves"`
	Sprites        Sprites   `json:"sprites"`
	Stats          []Stat    `json:"stats"`
	Types          []Type    `json:"types"`
}

// MainImageURL prefers the official artwork and falls back to the default
// front sprite. It returns "" when neither exists.
func (p *Pokemon) MainImageURL() string {
	if o := p.Sprites.Other; o != nil && o.OfficialArtwork != nil && o.OfficialArtwork.FrontDefault != nil {
		return *o.OfficialArtwork.FrontDefault
	}
	if p.Sprites.FrontDefault != nil {
		return *p.Sprites.FrontDefault
	}
	return ""
}

// HeightMeters converts the catalog's decimetres.
func (p *Pokemon) HeightMeters() float64 { return float64(p.Height) / 10 }

// WeightKilograms converts the catalog's hectograms.
func (p *Pokemon) WeightKilograms() float64 { return float64(p.Weight) / 10 }

// Item returns the fields the favorites store keeps.
func (p *Pokemon) Item() CatalogItem {
	return CatalogItem{ID: p.ID, Name: p.Name, ImageURL: p.MainImageURL()}
}
