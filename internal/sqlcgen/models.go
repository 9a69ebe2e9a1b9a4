package sqlcgen

import "time"

type GovLink struct {
	ID          string
	StateCode   string
	Title       string
	Category    string
	Description *string
	URL         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Lead struct {
	ID        string
	Title     string
	Agency    *string
	StateCode *string
	URL       *string
	Status    string
	EstValue  *float64
	DueDate   *time.Time
	Notes     *string
	Source    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type KFCNomination struct {
	ID        string
	Nominee   string
	Nominator string
	Points    int
	Reason    string
	Status    string
	DecidedBy *string
	DecidedAt *time.Time
	CreatedAt time.Time
}

type Resume struct {
	ID              string
	Name            string
	Email           *string
	Phone           *string
	YearsExperience int
	Skills          []string
	RawText         *string
	CreatedAt       time.Time
}

type JobPosting struct {
	ID          string
	Title       string
	Department  *string
	Location    *string
	Description *string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Preference struct {
	Actor     string
	Key       string
	Value     map[string]any
	UpdatedAt time.Time
}

type ComponentSetting struct {
	Name        string
	Visible     bool
	AccentColor string
	UpdatedAt   time.Time
}

type IngestRun struct {
	ID          string
	Status      string
	Source      *string
	Stats       map[string]any
	StartedAt   time.Time
	CompletedAt *time.Time
	LastError   *string
}

type IngestRunLog struct {
	RunID   string
	Level   string
	Message string
}
