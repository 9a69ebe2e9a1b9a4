package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const insertResume = `-- name: InsertResume :one
INSERT INTO resumes (name, email, phone, years_experience, skills, raw_text)
VALUES ($1, $2, $3, $4, COALESCE($5, '[]'::jsonb), $6)
RETURNING id, name, email, phone, years_experience, skills, raw_text, created_at
`

type InsertResumeParams struct {
	Name            string
	Email           *string
	Phone           *string
	YearsExperience int
	Skills          []string
	RawText         *string
}

func (q *Queries) InsertResume(ctx context.Context, arg InsertResumeParams) (Resume, error) {
	row := q.db.QueryRow(ctx, insertResume, arg.Name, arg.Email, arg.Phone, arg.YearsExperience, arg.Skills, arg.RawText)
	return scanResume(row)
}

const getResume = `-- name: GetResume :one
SELECT id, name, email, phone, years_experience, skills, raw_text, created_at
FROM resumes
WHERE id = $1
`

func (q *Queries) GetResume(ctx context.Context, id string) (Resume, error) {
	return scanResume(q.db.QueryRow(ctx, getResume, id))
}

const listResumes = `-- name: ListResumes :many
SELECT id, name, email, phone, years_experience, skills, raw_text, created_at
FROM resumes
ORDER BY created_at DESC, id ASC
`

func (q *Queries) ListResumes(ctx context.Context) ([]Resume, error) {
	rows, err := q.db.Query(ctx, listResumes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Resume
	for rows.Next() {
		i, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteResume = `-- name: DeleteResume :one
DELETE FROM resumes
WHERE id = $1
RETURNING id
`

func (q *Queries) DeleteResume(ctx context.Context, id string) (string, error) {
	var deleted string
	err := q.db.QueryRow(ctx, deleteResume, id).Scan(&deleted)
	return deleted, err
}

func scanResume(row pgx.Row) (Resume, error) {
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.YearsExperience,
		&i.Skills,
		&i.RawText,
		&i.CreatedAt,
	)
	return i, err
}

const createJobPosting = `-- name: CreateJobPosting :one
INSERT INTO job_postings (title, department, location, description, status)
VALUES ($1, $2, $3, $4, COALESCE($5, 'open'))
RETURNING id, title, department, location, description, status, created_at, updated_at
`

type CreateJobPostingParams struct {
	Title       string
	Department  *string
	Location    *string
	Description *string
	Status      *string
}

func (q *Queries) CreateJobPosting(ctx context.Context, arg CreateJobPostingParams) (JobPosting, error) {
	row := q.db.QueryRow(ctx, createJobPosting, arg.Title, arg.Department, arg.Location, arg.Description, arg.Status)
	return scanJobPosting(row)
}

const getJobPosting = `-- name: GetJobPosting :one
SELECT id, title, department, location, description, status, created_at, updated_at
FROM job_postings
WHERE id = $1
`

func (q *Queries) GetJobPosting(ctx context.Context, id string) (JobPosting, error) {
	return scanJobPosting(q.db.QueryRow(ctx, getJobPosting, id))
}

const listJobPostings = `-- name: ListJobPostings :many
SELECT id, title, department, location, description, status, created_at, updated_at
FROM job_postings
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC, id ASC
`

func (q *Queries) ListJobPostings(ctx context.Context, status *string) ([]JobPosting, error) {
	rows, err := q.db.Query(ctx, listJobPostings, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []JobPosting
	for rows.Next() {
		i, err := scanJobPosting(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateJobPosting = `-- name: UpdateJobPosting :one
UPDATE job_postings
SET title = COALESCE($2, title),
    department = COALESCE($3, department),
    location = COALESCE($4, location),
    description = COALESCE($5, description),
    status = COALESCE($6, status),
    updated_at = now()
WHERE id = $1
RETURNING id, title, department, location, description, status, created_at, updated_at
`

type UpdateJobPostingParams struct {
	ID          string
	Title       *string
	Department  *string
	Location    *string
	Description *string
	Status      *string
}

func (q *Queries) UpdateJobPosting(ctx context.Context, arg UpdateJobPostingParams) (JobPosting, error) {
	row := q.db.QueryRow(ctx, updateJobPosting,
		arg.ID,
		arg.Title,
		arg.Department,
		arg.Location,
		arg.Description,
		arg.Status,
	)
	return scanJobPosting(row)
}

const deleteJobPosting = `-- name: DeleteJobPosting :one
DELETE FROM job_postings
WHERE id = $1
RETURNING id
`

func (q *Queries) DeleteJobPosting(ctx context.Context, id string) (string, error) {
	var deleted string
	err := q.db.QueryRow(ctx, deleteJobPosting, id).Scan(&deleted)
	return deleted, err
}

func scanJobPosting(row pgx.Row) (JobPosting, error) {
	var i JobPosting
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Department,
		&i.Location,
		&i.Description,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
