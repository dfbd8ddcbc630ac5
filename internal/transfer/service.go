package transfer

import (
	"fmt"

	"github.com/hferris/tabula/internal/domain"
	"github.com/hferris/tabula/internal/store"
)

// Options configures import behavior.
type Options struct {
	// Atomic runs the whole import in a single transaction, so a failure
	// anywhere rolls back everything. The default commits list by list and
	// keeps already-committed lists on a later failure.
	Atomic bool
}

// Service exposes bulk import and export of board content.
type Service struct {
	store *store.Store
	opts  Options
}

// New creates a transfer service over the given store.
func New(s *store.Store, opts Options) *Service {
	return &Service{store: s, opts: opts}
}

// authorize resolves the board and checks that the user is a member of its
// workspace. The board lookup runs first, so a caller probing with a bad
// reference learns nothing about membership.
func (svc *Service) authorize(userUUID, boardRef string) (*domain.Board, error) {
	if userUUID == "" {
		return nil, domain.ErrUnauthenticated
	}

	board, err := svc.store.Boards.GetByPublicID(boardRef)
	if err != nil {
		return nil, err
	}

	member, err := svc.store.Workspaces.IsMember(board.WorkspaceUUID, userUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrUnauthorized
	}

	return board, nil
}

// Import runs the full import pipeline against a board: preprocess,
// validate, open a ledger batch, reconcile and write, then close the batch.
// The batch reaches failed or success exactly once; validation failures
// happen before the batch exists and leave no ledger row.
func (svc *Service) Import(userUUID, boardRef, payload string) (*ImportResult, error) {
	board, err := svc.authorize(userUUID, boardRef)
	if err != nil {
		return nil, err
	}

	docs, err := Preprocess(payload)
	if err != nil {
		return nil, err
	}
	if err := Validate(docs); err != nil {
		return nil, err
	}

	batch, err := svc.store.Batches.Create(board.UUID, userUUID, domain.BatchSourceJSON)
	if err != nil {
		return nil, err
	}

	result, err := runImport(svc.store, board.UUID, userUUID, batch.UUID, docs, svc.opts.Atomic)
	if err != nil {
		// The import failure is the root cause; a failure to mark the batch
		// must not displace it.
		if ferr := svc.store.Batches.Finish(batch.UUID, domain.BatchStatusFailed); ferr != nil {
			return nil, fmt.Errorf("%w (also failed to mark import batch failed: %v)", err, ferr)
		}
		return nil, err
	}

	if err := svc.store.Batches.Finish(batch.UUID, domain.BatchStatusSuccess); err != nil {
		return nil, err
	}

	result.BatchUUID = batch.UUID
	return result, nil
}

// Export serializes a board's visible lists, cards, labels, and checklists
// as a JSON payload that Import accepts unchanged. Reads run outside any
// transaction; export never writes.
func (svc *Service) Export(userUUID, boardRef string) (string, error) {
	board, err := svc.authorize(userUUID, boardRef)
	if err != nil {
		return "", err
	}

	docs, err := assembleBoard(svc.store, board.UUID)
	if err != nil {
		return "", err
	}

	return marshalDocuments(docs)
}
