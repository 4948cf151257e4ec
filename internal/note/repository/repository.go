package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/adilbekov/notekeeper/internal/note/domain"
)

var ErrNoteNotFound = errors.New("note not found")

// UpdateFields lists the columns an update may touch. Nil pointers (and nil
// tags) leave the stored value untouched.
type UpdateFields struct {
	Title    *string
	Content  *string
	Tags     []string
	IsPinned *bool
}

func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Content == nil && f.Tags == nil && f.IsPinned == nil
}

// Repository operations take an owner id and filter on it: a note id without
// a matching owner is indistinguishable from a nonexistent one.
type Repository interface {
	Create(ctx context.Context, note domain.Note) error
	FindByIDAndOwner(ctx context.Context, id domain.ID, ownerID string) (domain.Note, error)
	Update(ctx context.Context, id domain.ID, ownerID string, fields UpdateFields) (domain.Note, error)
	Delete(ctx context.Context, id domain.ID, ownerID string) error
	FindAllByOwner(ctx context.Context, ownerID string) ([]domain.Note, error)
	SearchByOwner(ctx context.Context, ownerID string, query string) ([]domain.Note, error)
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const noteColumns = "id, title, content, tags, is_pinned, user_id, created_at"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, note domain.Note) error {
	query, args, err := psql.
		Insert("notes").
		Columns("id", "title", "content", "tags", "is_pinned", "user_id", "created_at").
		Values(string(note.ID), note.Title, note.Content, note.Tags, note.IsPinned, note.OwnerID, note.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByIDAndOwner(ctx context.Context, id domain.ID, ownerID string) (domain.Note, error) {
	query, args, err := psql.
		Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"id": string(id), "user_id": ownerID}).
		ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.scanNote(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, ownerID string, fields UpdateFields) (domain.Note, error) {
	builder := psql.Update("notes").Where(squirrel.Eq{"id": string(id), "user_id": ownerID})

	if fields.Title != nil {
		builder = builder.Set("title", *fields.Title)
	}
	if fields.Content != nil {
		builder = builder.Set("content", *fields.Content)
	}
	if fields.Tags != nil {
		builder = builder.Set("tags", fields.Tags)
	}
	if fields.IsPinned != nil {
		builder = builder.Set("is_pinned", *fields.IsPinned)
	}

	query, args, err := builder.Suffix("RETURNING " + noteColumns).ToSql()
	if err != nil {
		return domain.Note{}, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.scanNote(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID, ownerID string) error {
	query, args, err := psql.
		Delete("notes").
		Where(squirrel.Eq{"id": string(id), "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PgRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	// Pinned notes first; creation order keeps the listing stable otherwise.
	query, args, err := psql.
		Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy("is_pinned DESC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	return r.queryNotes(ctx, query, args)
}

func (r *PgRepository) SearchByOwner(ctx context.Context, ownerID string, searchQuery string) ([]domain.Note, error) {
	pattern := "%" + searchQuery + "%"
	query, args, err := psql.
		Select(noteColumns).
		From("notes").
		Where(squirrel.Eq{"user_id": ownerID}).
		Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"content": pattern},
		}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	return r.queryNotes(ctx, query, args)
}

func (r *PgRepository) queryNotes(ctx context.Context, query string, args []interface{}) ([]domain.Note, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.Tags, &note.IsPinned, &note.OwnerID, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return notes, nil
}

func (r *PgRepository) scanNote(row pgx.Row) (domain.Note, error) {
	var note domain.Note
	err := row.Scan(&note.ID, &note.Title, &note.Content, &note.Tags, &note.IsPinned, &note.OwnerID, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, ErrNoteNotFound
		}
		return domain.Note{}, fmt.Errorf("failed to scan note: %w", err)
	}
	return note, nil
}
