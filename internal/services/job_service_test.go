package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/hearthstack/homescore-backend/internal/types"
)

func TestEnqueueCollapsesDuplicates(t *testing.T) {
	repo := &fakeJobRunRepo{}
	svc := NewJobService(nil, testLogger(), repo)
	propertyID := uuid.New()

	first, created, err := svc.Enqueue(testDbc(), propertyID, types.JobTypeRiskRecalculate, nil)
	if err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if !created {
		t.Fatalf("first enqueue should create a row")
	}
	if first.Status != types.JobStatusQueued || first.DedupeKey != types.DedupeKeyFor(propertyID, types.JobTypeRiskRecalculate) {
		t.Fatalf("unexpected job row: %+v", first)
	}

	second, created, err := svc.Enqueue(testDbc(), propertyID, types.JobTypeRiskRecalculate, nil)
	if err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	if created {
		t.Fatalf("duplicate enqueue should not create a row")
	}
	if second.ID != first.ID {
		t.Fatalf("duplicate enqueue returned a different job: %s vs %s", second.ID, first.ID)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(repo.rows))
	}
}

func TestEnqueueDistinctJobTypesDoNotCollide(t *testing.T) {
	repo := &fakeJobRunRepo{}
	svc := NewJobService(nil, testLogger(), repo)
	propertyID := uuid.New()

	if _, created, _ := svc.Enqueue(testDbc(), propertyID, types.JobTypeRiskRecalculate, nil); !created {
		t.Fatalf("risk enqueue should create")
	}
	if _, created, _ := svc.Enqueue(testDbc(), propertyID, types.JobTypeFinancialRecalculate, nil); !created {
		t.Fatalf("financial enqueue should create despite pending risk job")
	}
	if len(repo.rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(repo.rows))
	}
}

func TestEnqueueAfterTerminalStateCreatesFreshRow(t *testing.T) {
	repo := &fakeJobRunRepo{}
	svc := NewJobService(nil, testLogger(), repo)
	propertyID := uuid.New()

	first, _, err := svc.Enqueue(testDbc(), propertyID, types.JobTypeRiskRecalculate, nil)
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := repo.MarkSucceeded(testDbc().Ctx, nil, first.ID, nil); err != nil {
		t.Fatalf("mark succeeded: %v", err)
	}

	_, created, err := svc.Enqueue(testDbc(), propertyID, types.JobTypeRiskRecalculate, nil)
	if err != nil {
		t.Fatalf("re-enqueue: %v", err)
	}
	if !created {
		t.Fatalf("finished job should not block a new enqueue")
	}
}

func TestEnqueueValidation(t *testing.T) {
	svc := NewJobService(nil, testLogger(), &fakeJobRunRepo{})
	if _, _, err := svc.Enqueue(testDbc(), uuid.Nil, types.JobTypeRiskRecalculate, nil); err == nil {
		t.Fatalf("nil property id should be rejected")
	}
	if _, _, err := svc.Enqueue(testDbc(), uuid.New(), "", nil); err == nil {
		t.Fatalf("empty job type should be rejected")
	}
}
