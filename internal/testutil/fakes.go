// Package testutil provides in-memory implementations of the repository ports.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/domain/repository"
)

// JobCardStore is an in-memory JobCardRepository
type JobCardStore struct {
	mu    sync.Mutex
	cards map[string]*entity.JobCard

	// Err, when set, is returned by every call
	Err error
	// UpsertErr fails the upsert of specific drive ids
	UpsertErr map[string]error

	Upserts     []string
	Inactivated [][]string
}

// NewJobCardStore returns a store seeded with copies of cards
func NewJobCardStore(cards ...*entity.JobCard) *JobCardStore {
	s := &JobCardStore{
		cards:     make(map[string]*entity.JobCard),
		UpsertErr: make(map[string]error),
	}
	for _, c := range cards {
		s.cards[c.DriveID] = cloneCard(c)
	}
	return s
}

func cloneCard(c *entity.JobCard) *entity.JobCard {
	out := *c
	out.Operations = c.Operations.Clone()
	return &out
}

// Card returns a copy of one stored card, or nil
func (s *JobCardStore) Card(id string) *entity.JobCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cards[id]; ok {
		return cloneCard(c)
	}
	return nil
}

func (s *JobCardStore) GetByKey(_ context.Context, driveID string) (*entity.JobCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.cards[driveID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCard(c), nil
}

func (s *JobCardStore) GetAllActive(_ context.Context) ([]*entity.JobCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*entity.JobCard
	for _, c := range s.cards {
		if c.IsActive {
			out = append(out, cloneCard(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectName() != out[j].ProjectName() {
			return out[i].ProjectName() < out[j].ProjectName()
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *JobCardStore) GetSyncStates(_ context.Context) (map[string]entity.SyncState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]entity.SyncState, len(s.cards))
	for id, c := range s.cards {
		out[id] = entity.SyncState{ModifiedDttm: c.ModifiedDttm, IsActive: c.IsActive, Project: c.ProjectName()}
	}
	return out, nil
}

func (s *JobCardStore) GetDistinctProjects(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, c := range s.cards {
		if !c.IsActive || c.Project == nil {
			continue
		}
		if _, ok := seen[*c.Project]; !ok {
			seen[*c.Project] = struct{}{}
			out = append(out, *c.Project)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Upsert keeps the creation time of an existing row, like the SQL upsert
func (s *JobCardStore) Upsert(_ context.Context, card *entity.JobCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if err := s.UpsertErr[card.DriveID]; err != nil {
		return err
	}
	next := cloneCard(card)
	if prev, ok := s.cards[card.DriveID]; ok {
		next.CreationDttm = prev.CreationDttm
	}
	s.cards[card.DriveID] = next
	s.Upserts = append(s.Upserts, card.DriveID)
	return nil
}

func (s *JobCardStore) SetInactive(_ context.Context, driveIDs []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, id := range driveIDs {
		if c, ok := s.cards[id]; ok {
			c.IsActive = false
			n++
		}
	}
	s.Inactivated = append(s.Inactivated, append([]string(nil), driveIDs...))
	return n, nil
}

func (s *JobCardStore) ApplyOperationUpdate(_ context.Context, u *entity.OperationUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	c, ok := s.cards[u.JobCardCode]
	if !ok {
		return false, nil
	}
	rec, ok := c.Operations[u.Operation]
	if !ok {
		return false, nil
	}
	c.Operations[u.Operation] = u.ApplyTo(rec)
	return true, nil
}

func (s *JobCardStore) Ping(_ context.Context) error {
	return s.Err
}

// OperationLog is an in-memory OperationLogRepository
type OperationLog struct {
	mu      sync.Mutex
	Entries []entity.OperationLogEntry
	Err     error
}

func (l *OperationLog) Append(_ context.Context, entry *entity.OperationLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	l.Entries = append(l.Entries, *entry)
	return nil
}

// Node is a file or folder in a DocumentTree
type Node struct {
	Entry  entity.DocumentEntry
	Folder bool
}

// DocumentTree is an in-memory DocumentSource
type DocumentTree struct {
	mu       sync.Mutex
	Children map[string][]Node
	Grids    map[string]entity.Grid
	// Workbooks hold raw bytes for documents whose grid read is rejected
	Workbooks map[string][]byte
	ListErr   map[string]error
	ReadErr   map[string]error

	Downloads []string
}

// NewDocumentTree returns an empty tree
func NewDocumentTree() *DocumentTree {
	return &DocumentTree{
		Children:  make(map[string][]Node),
		Grids:     make(map[string]entity.Grid),
		Workbooks: make(map[string][]byte),
		ListErr:   make(map[string]error),
		ReadErr:   make(map[string]error),
	}
}

// AddFolder adds a child folder under parent
func (t *DocumentTree) AddFolder(parent, id, name string) {
	t.Children[parent] = append(t.Children[parent], Node{
		Entry:  entity.DocumentEntry{ID: id, Name: name},
		Folder: true,
	})
}

// AddFile adds a document under parent
func (t *DocumentTree) AddFile(parent string, entry entity.DocumentEntry, grid entity.Grid) {
	t.Children[parent] = append(t.Children[parent], Node{Entry: entry})
	if grid != nil {
		t.Grids[entry.ID] = grid
	}
}

func (t *DocumentTree) ListFolder(_ context.Context, parentID string, filter entity.FolderFilter) ([]entity.DocumentEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ListErr[parentID]; err != nil {
		return nil, err
	}
	var out []entity.DocumentEntry
	for _, n := range t.Children[parentID] {
		if filter.FoldersOnly && !n.Folder {
			continue
		}
		if filter.NameContains != "" && !strings.Contains(n.Entry.Name, filter.NameContains) {
			continue
		}
		out = append(out, n.Entry)
	}
	return out, nil
}

func (t *DocumentTree) ReadGrid(_ context.Context, documentID, _ string) (entity.Grid, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ReadErr[documentID]; err != nil {
		return nil, err
	}
	if _, ok := t.Workbooks[documentID]; ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrUnsupportedFormat, documentID)
	}
	g, ok := t.Grids[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, repository.ErrNotFound)
	}
	return g, nil
}

func (t *DocumentTree) ReadRawBytes(_ context.Context, documentID string) (io.ReadCloser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Downloads = append(t.Downloads, documentID)
	b, ok := t.Workbooks[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, repository.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// ColorCall records one ColorCells call
type ColorCall struct {
	Sheet     string
	From      entity.GridPos
	Rows      int
	Cols      int
	Highlight entity.Highlight
}

// NoteCall records one SetNote call
type NoteCall struct {
	Sheet string
	Pos   entity.GridPos
	Note  *string
}

// SheetRecorder is a SheetWriter that records every call
type SheetRecorder struct {
	mu       sync.Mutex
	Replaced map[string]*entity.SheetProjection
	Colors   []ColorCall
	Notes    []NoteCall
	Titles   []string
	Err      error
}

// NewSheetRecorder returns an empty recorder
func NewSheetRecorder() *SheetRecorder {
	return &SheetRecorder{Replaced: make(map[string]*entity.SheetProjection)}
}

func (r *SheetRecorder) ReplaceSheet(_ context.Context, title string, p *entity.SheetProjection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Replaced[title] = p
	return nil
}

func (r *SheetRecorder) ColorCells(_ context.Context, title string, from entity.GridPos, rows, cols int, h entity.Highlight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Colors = append(r.Colors, ColorCall{Sheet: title, From: from, Rows: rows, Cols: cols, Highlight: h})
	return nil
}

func (r *SheetRecorder) SetNote(_ context.Context, title string, pos entity.GridPos, note *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Notes = append(r.Notes, NoteCall{Sheet: title, Pos: pos, Note: note})
	return nil
}

func (r *SheetRecorder) SheetTitles(_ context.Context) ([]string, error) {
	return r.Titles, r.Err
}

// Str returns a pointer to s
func Str(s string) *string { return &s }
