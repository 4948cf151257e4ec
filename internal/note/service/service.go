package service

import (
	"context"
	"errors"
	"time"

	commoncrypto "github.com/adilbekov/notekeeper/internal/common/crypto"
	commonerrors "github.com/adilbekov/notekeeper/internal/common/errors"
	"github.com/adilbekov/notekeeper/internal/common/logger"
	"github.com/adilbekov/notekeeper/internal/note/domain"
	noterepo "github.com/adilbekov/notekeeper/internal/note/repository"
	"github.com/adilbekov/notekeeper/internal/observability/metrics"
)

// NoteService implements the owner-scoped note operations. Every method
// takes the resolved identity of the caller; nothing here ever reads or
// writes a note belonging to anyone else.
type NoteService struct {
	notes       noterepo.Repository
	idGenerator commoncrypto.IDGenerator
	now         func() time.Time
	log         *logger.Logger
}

func NewNoteService(notes noterepo.Repository, idGenerator commoncrypto.IDGenerator, log *logger.Logger) *NoteService {
	return &NoteService{
		notes:       notes,
		idGenerator: idGenerator,
		now:         time.Now,
		log:         log,
	}
}

type AddInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
	Tags    []string
}

// EditInput follows the contract's falsy-field semantics: an empty title or
// content means "leave unchanged", and nil tags means "leave unchanged" while
// a present empty list replaces the stored tags.
type EditInput struct {
	Title   string
	Content string
	Tags    []string
}

func (in EditInput) empty() bool {
	return in.Title == "" && in.Content == "" && in.Tags == nil
}

func (s *NoteService) Add(ctx context.Context, ownerID string, input AddInput) (domain.Note, error) {
	if err := validateInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"action":  "add_note_validation_failed",
		}).Warnf("add note validation failed: %v", err)
		return domain.Note{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Note{}, commonerrors.ErrInternalError.WithCause(err)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	note := domain.Note{
		ID:        domain.ID(id),
		Title:     input.Title,
		Content:   input.Content,
		Tags:      tags,
		OwnerID:   ownerID,
		CreatedAt: s.now(),
	}

	if err := s.notes.Create(ctx, note); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"action":  "add_note_failed",
		}).Errorf("add note failed: %v", err)
		return domain.Note{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.NotesCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": ownerID,
		"note_id": id,
		"action":  "add_note_success",
	}).Info("note added")

	return note, nil
}

func (s *NoteService) Edit(ctx context.Context, ownerID string, noteID domain.ID, input EditInput) (domain.Note, error) {
	if input.empty() {
		return domain.Note{}, ErrNoChanges
	}

	fields := noterepo.UpdateFields{}
	if input.Title != "" {
		fields.Title = &input.Title
	}
	if input.Content != "" {
		fields.Content = &input.Content
	}
	if input.Tags != nil {
		fields.Tags = input.Tags
	}

	note, err := s.notes.Update(ctx, noteID, ownerID, fields)
	if err != nil {
		return domain.Note{}, s.mapUpdateError(ctx, ownerID, noteID, "edit_note", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": ownerID,
		"note_id": string(noteID),
		"action":  "edit_note_success",
	}).Info("note updated")

	return note, nil
}

func (s *NoteService) List(ctx context.Context, ownerID string) ([]domain.Note, error) {
	notes, err := s.notes.FindAllByOwner(ctx, ownerID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"action":  "list_notes_failed",
		}).Errorf("list notes failed: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return notes, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID string, noteID domain.ID) error {
	if err := s.notes.Delete(ctx, noteID, ownerID); err != nil {
		if errors.Is(err, noterepo.ErrNoteNotFound) {
			return ErrNoteNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"note_id": string(noteID),
			"action":  "delete_note_failed",
		}).Errorf("delete note failed: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.NotesDeleted.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": ownerID,
		"note_id": string(noteID),
		"action":  "delete_note_success",
	}).Info("note deleted")

	return nil
}

// UpdatePinned sets the pin flag to the supplied value. An absent flag and
// an explicit false are equivalent; callers cannot tell the two apart.
func (s *NoteService) UpdatePinned(ctx context.Context, ownerID string, noteID domain.ID, isPinned bool) (domain.Note, error) {
	note, err := s.notes.Update(ctx, noteID, ownerID, noterepo.UpdateFields{IsPinned: &isPinned})
	if err != nil {
		return domain.Note{}, s.mapUpdateError(ctx, ownerID, noteID, "update_pinned", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": ownerID,
		"note_id": string(noteID),
		"pinned":  isPinned,
		"action":  "update_pinned_success",
	}).Info("note pin flag updated")

	return note, nil
}

func (s *NoteService) Search(ctx context.Context, ownerID string, query string) ([]domain.Note, error) {
	if query == "" {
		return nil, ErrSearchQueryRequired
	}

	notes, err := s.notes.SearchByOwner(ctx, ownerID, query)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"action":  "search_notes_failed",
		}).Errorf("search notes failed: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.NoteSearchesTotal.Inc()
	return notes, nil
}

func (s *NoteService) mapUpdateError(ctx context.Context, ownerID string, noteID domain.ID, action string, err error) error {
	if errors.Is(err, noterepo.ErrNoteNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": ownerID,
			"note_id": string(noteID),
			"action":  action + "_not_found",
		}).Warn("note not found")
		return ErrNoteNotFound
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": ownerID,
		"note_id": string(noteID),
		"action":  action + "_failed",
	}).Errorf("%s failed: %v", action, err)
	return commonerrors.ErrInternalError.WithCause(err)
}
