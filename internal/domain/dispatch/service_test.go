package dispatch

import (
	"context"
	"sync"
	"testing"

	"bakestock/internal/core/apperror"
	"bakestock/internal/core/id"
	"bakestock/internal/core/types"
	"bakestock/internal/domain/lots"
)

// --- In-memory fakes ---

type memLotRepo struct {
	mu   sync.Mutex
	lots map[id.ID]*lots.ExpiredLot
}

func newMemLotRepo(seed ...*lots.ExpiredLot) *memLotRepo {
	r := &memLotRepo{lots: make(map[id.ID]*lots.ExpiredLot)}
	for _, l := range seed {
		r.lots[l.ID] = l
	}
	return r
}

func (r *memLotRepo) Create(ctx context.Context, lot *lots.ExpiredLot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lots[lot.ID] = lot
	return nil
}

func (r *memLotRepo) GetByID(ctx context.Context, lotID id.ID) (*lots.ExpiredLot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lot, ok := r.lots[lotID]
	if !ok {
		return nil, apperror.NewNotFound("lot", lotID)
	}
	cp := *lot
	return &cp, nil
}

func (r *memLotRepo) GetForUpdate(ctx context.Context, lotID id.ID) (*lots.ExpiredLot, error) {
	return r.GetByID(ctx, lotID)
}

func (r *memLotRepo) UpdateStatus(ctx context.Context, lotID id.ID, status lots.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lot, ok := r.lots[lotID]
	if !ok {
		return apperror.NewNotFound("lot", lotID)
	}
	lot.Status = status
	return nil
}

func (r *memLotRepo) List(ctx context.Context, filter lots.ListFilter) (lots.ListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result lots.ListResult
	for _, lot := range r.lots {
		cp := *lot
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

type memDispatchRepo struct {
	mu      sync.Mutex
	records []Record
}

func (r *memDispatchRepo) Insert(ctx context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return nil
}

func (r *memDispatchRepo) GetByID(ctx context.Context, recordID id.ID) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == recordID {
			cp := rec
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("dispatch", recordID)
}

func (r *memDispatchRepo) Update(ctx context.Context, rec *Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == rec.ID {
			r.records[i] = *rec
			return nil
		}
	}
	return apperror.NewNotFound("dispatch", rec.ID)
}

func (r *memDispatchRepo) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result ListResult
	for i := range r.records {
		cp := r.records[i]
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

func (r *memDispatchRepo) ListByLot(ctx context.Context, lotID id.ID) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Record
	for _, rec := range r.records {
		if rec.LotID == lotID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memDispatchRepo) SumByLot(ctx context.Context, lotID id.ID) (types.Quantity, error) {
	recs, _ := r.ListByLot(ctx, lotID)
	return DispatchedTotal(lotID, recs), nil
}

// nopTxManager runs the function without a real transaction. The
// in-memory repos are already serialized by their own mutexes.
type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(lot *lots.ExpiredLot, cfg Config) (*Service, *memLotRepo, *memDispatchRepo) {
	lotRepo := newMemLotRepo(lot)
	repo := &memDispatchRepo{}
	return NewService(lotRepo, repo, nopTxManager{}, cfg), lotRepo, repo
}

// --- Tests ---

func TestService_Record(t *testing.T) {
	lot := testLot(100)
	svc, _, repo := newTestService(lot, Config{AllowUncheckedAmend: true})
	ctx := context.Background()

	rec, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationAnimalFeed,
		Quantity:     qty(40),
		DispatchedBy: "Maria",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if id.IsNil(rec.ID) || rec.DispatchDate.IsZero() {
		t.Error("expected assigned id and dispatch date")
	}

	_, remaining, err := svc.Remaining(ctx, lot.ID)
	if err != nil {
		t.Fatalf("remaining failed: %v", err)
	}
	if remaining != qty(60) {
		t.Errorf("expected remaining 60, got %s", remaining)
	}
	if len(repo.records) != 1 {
		t.Errorf("expected 1 ledger record, got %d", len(repo.records))
	}
}

func TestService_Record_ExceedsRemaining(t *testing.T) {
	lot := testLot(100)
	svc, _, _ := newTestService(lot, Config{})
	ctx := context.Background()

	if _, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationCompost,
		Quantity:     qty(40),
		DispatchedBy: "Maria",
	}); err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	_, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationCompost,
		Quantity:     qty(75),
		DispatchedBy: "Maria",
	})
	if !apperror.IsExceedsRemaining(err) {
		t.Fatalf("expected exceeds remaining, got %v", err)
	}

	// The rejected dispatch must not change the ledger.
	_, remaining, _ := svc.Remaining(ctx, lot.ID)
	if remaining != qty(60) {
		t.Errorf("expected remaining unchanged at 60, got %s", remaining)
	}
}

func TestService_Record_ExactDepletion(t *testing.T) {
	lot := testLot(100)
	svc, lotRepo, _ := newTestService(lot, Config{})
	ctx := context.Background()

	for _, q := range []float64{60, 40} {
		if _, err := svc.Record(ctx, RecordInput{
			LotID:        lot.ID,
			Destination:  DestinationDonation,
			Quantity:     qty(q),
			DispatchedBy: "Jonas",
		}); err != nil {
			t.Fatalf("record %v failed: %v", q, err)
		}
	}

	stored, _ := lotRepo.GetByID(ctx, lot.ID)
	if stored.Status != lots.StatusDepleted {
		t.Errorf("expected lot depleted, got %s", stored.Status)
	}

	// Even the smallest further dispatch is rejected.
	_, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationDonation,
		Quantity:     qty(0.0001),
		DispatchedBy: "Jonas",
	})
	if !apperror.IsExceedsRemaining(err) {
		t.Fatalf("expected exceeds remaining on depleted lot, got %v", err)
	}
}

func TestService_Record_LotNotFound(t *testing.T) {
	svc, _, _ := newTestService(testLot(10), Config{})

	_, err := svc.Record(context.Background(), RecordInput{
		LotID:        id.New(),
		Destination:  DestinationDiscard,
		Quantity:     qty(1),
		DispatchedBy: "Maria",
	})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_Amend_Unchecked(t *testing.T) {
	lot := testLot(100)
	svc, lotRepo, _ := newTestService(lot, Config{AllowUncheckedAmend: true})
	ctx := context.Background()

	rec, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationAnimalFeed,
		Quantity:     qty(40),
		DispatchedBy: "Maria",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Unchecked amend may overdraw the lot.
	over := qty(150)
	amended, err := svc.Amend(ctx, rec.ID, AmendInput{Quantity: &over})
	if err != nil {
		t.Fatalf("amend failed: %v", err)
	}
	if amended.Quantity != over {
		t.Errorf("expected quantity 150, got %s", amended.Quantity)
	}

	// Remaining goes negative and the lot counts as depleted.
	_, remaining, _ := svc.Remaining(ctx, lot.ID)
	if remaining != qty(-50) {
		t.Errorf("expected remaining -50, got %s", remaining)
	}
	stored, _ := lotRepo.GetByID(ctx, lot.ID)
	if stored.Status != lots.StatusDepleted {
		t.Errorf("expected lot depleted, got %s", stored.Status)
	}
}

func TestService_Amend_Checked(t *testing.T) {
	lot := testLot(100)
	svc, _, _ := newTestService(lot, Config{AllowUncheckedAmend: false})
	ctx := context.Background()

	rec, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationAnimalFeed,
		Quantity:     qty(40),
		DispatchedBy: "Maria",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Raising to the full original quantity is fine: the record's own
	// previous quantity does not count against itself.
	full := qty(100)
	if _, err := svc.Amend(ctx, rec.ID, AmendInput{Quantity: &full}); err != nil {
		t.Fatalf("amend to full capacity failed: %v", err)
	}

	over := qty(100.0001)
	_, err = svc.Amend(ctx, rec.ID, AmendInput{Quantity: &over})
	if !apperror.IsExceedsRemaining(err) {
		t.Fatalf("expected exceeds remaining, got %v", err)
	}
}

func TestService_Amend_ReopensLot(t *testing.T) {
	lot := testLot(100)
	svc, lotRepo, _ := newTestService(lot, Config{AllowUncheckedAmend: true})
	ctx := context.Background()

	rec, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationStaffMeals,
		Quantity:     qty(100),
		DispatchedBy: "Petra",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	stored, _ := lotRepo.GetByID(ctx, lot.ID)
	if stored.Status != lots.StatusDepleted {
		t.Fatalf("expected lot depleted after full dispatch")
	}

	// Shrinking the record frees capacity and reopens the lot.
	smaller := qty(30)
	if _, err := svc.Amend(ctx, rec.ID, AmendInput{Quantity: &smaller}); err != nil {
		t.Fatalf("amend failed: %v", err)
	}

	stored, _ = lotRepo.GetByID(ctx, lot.ID)
	if stored.Status != lots.StatusOpen {
		t.Errorf("expected lot reopened, got %s", stored.Status)
	}
}

func TestService_Amend_BasicValidation(t *testing.T) {
	lot := testLot(100)
	svc, _, _ := newTestService(lot, Config{AllowUncheckedAmend: true})
	ctx := context.Background()

	rec, err := svc.Record(ctx, RecordInput{
		LotID:        lot.ID,
		Destination:  DestinationCompost,
		Quantity:     qty(10),
		DispatchedBy: "Maria",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// Even unchecked amends never accept a non-positive quantity or an
	// unknown destination.
	zero := qty(0)
	if _, err := svc.Amend(ctx, rec.ID, AmendInput{Quantity: &zero}); err == nil {
		t.Error("expected zero quantity rejection")
	}

	bad := Destination("landfill")
	if _, err := svc.Amend(ctx, rec.ID, AmendInput{Destination: &bad}); err == nil {
		t.Error("expected unknown destination rejection")
	}

	empty := ""
	if _, err := svc.Amend(ctx, rec.ID, AmendInput{DispatchedBy: &empty}); err == nil {
		t.Error("expected empty dispatcher rejection")
	}
}
