package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/mealplanner/internal/models"
	"github.com/mmynk/mealplanner/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, email string) *models.User {
	t.Helper()

	user := models.NewUser(email, "Test User", "not-a-real-hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "alice@example.com")
	bob := createTestUser(t, store, "bob@example.com")

	t.Run("CreateMealPlan generates ID and CreatedAt", func(t *testing.T) {
		plan := &models.MealPlan{
			OwnerID:   alice.ID,
			StartDate: models.NewDate(2023, time.July, 10),
			EndDate:   models.NewDate(2023, time.July, 16),
		}

		if err := store.CreateMealPlan(ctx, plan); err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		if plan.ID == "" {
			t.Error("Expected plan ID to be generated")
		}
		if plan.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetMealPlan round-trips dates", func(t *testing.T) {
		original := &models.MealPlan{
			OwnerID:   alice.ID,
			StartDate: models.NewDate(2023, time.July, 3),
			EndDate:   models.NewDate(2023, time.July, 9),
		}
		if err := store.CreateMealPlan(ctx, original); err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		retrieved, err := store.GetMealPlan(ctx, alice.ID, original.ID)
		if err != nil {
			t.Fatalf("GetMealPlan failed: %v", err)
		}

		if retrieved.ID != original.ID {
			t.Errorf("ID mismatch: got %s, want %s", retrieved.ID, original.ID)
		}
		if retrieved.OwnerID != alice.ID {
			t.Errorf("OwnerID mismatch: got %s, want %s", retrieved.OwnerID, alice.ID)
		}
		if !retrieved.StartDate.Equal(original.StartDate) {
			t.Errorf("StartDate mismatch: got %s, want %s", retrieved.StartDate, original.StartDate)
		}
		if !retrieved.EndDate.Equal(original.EndDate) {
			t.Errorf("EndDate mismatch: got %s, want %s", retrieved.EndDate, original.EndDate)
		}
	})

	t.Run("GetMealPlan hides other owners' plans", func(t *testing.T) {
		plan := &models.MealPlan{
			OwnerID:   alice.ID,
			StartDate: models.NewDate(2023, time.August, 1),
			EndDate:   models.NewDate(2023, time.August, 7),
		}
		if err := store.CreateMealPlan(ctx, plan); err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		_, err := store.GetMealPlan(ctx, bob.ID, plan.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetMealPlan returns ErrNotFound for nonexistent plan", func(t *testing.T) {
		_, err := store.GetMealPlan(ctx, alice.ID, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListMealPlans is scoped and ordered by start date descending", func(t *testing.T) {
		carol := createTestUser(t, store, "carol@example.com")
		dave := createTestUser(t, store, "dave@example.com")

		for _, start := range []int{3, 17, 10} {
			plan := &models.MealPlan{
				OwnerID:   carol.ID,
				StartDate: models.NewDate(2023, time.July, start),
				EndDate:   models.NewDate(2023, time.July, start+6),
			}
			if err := store.CreateMealPlan(ctx, plan); err != nil {
				t.Fatalf("CreateMealPlan failed: %v", err)
			}
		}
		other := &models.MealPlan{
			OwnerID:   dave.ID,
			StartDate: models.NewDate(2023, time.December, 1),
			EndDate:   models.NewDate(2023, time.December, 2),
		}
		if err := store.CreateMealPlan(ctx, other); err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		plans, err := store.ListMealPlans(ctx, carol.ID)
		if err != nil {
			t.Fatalf("ListMealPlans failed: %v", err)
		}

		if len(plans) != 3 {
			t.Fatalf("Expected 3 plans, got %d", len(plans))
		}
		want := []string{"2023-07-17", "2023-07-10", "2023-07-03"}
		for i, plan := range plans {
			if plan.StartDate.String() != want[i] {
				t.Errorf("plans[%d].StartDate = %s, want %s", i, plan.StartDate, want[i])
			}
			if plan.OwnerID != carol.ID {
				t.Errorf("plans[%d] owned by %s, want %s", i, plan.OwnerID, carol.ID)
			}
		}
	})

	t.Run("ListMealPlans returns empty slice for user without plans", func(t *testing.T) {
		erin := createTestUser(t, store, "erin@example.com")

		plans, err := store.ListMealPlans(ctx, erin.ID)
		if err != nil {
			t.Fatalf("ListMealPlans failed: %v", err)
		}
		if plans == nil || len(plans) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", plans)
		}
	})

	t.Run("UpdateMealPlan persists new dates", func(t *testing.T) {
		plan := &models.MealPlan{
			OwnerID:   alice.ID,
			StartDate: models.NewDate(2023, time.July, 10),
			EndDate:   models.NewDate(2023, time.July, 16),
		}
		if err := store.CreateMealPlan(ctx, plan); err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		plan.StartDate = models.NewDate(2023, time.July, 17)
		plan.EndDate = models.NewDate(2023, time.July, 23)
		if err := store.UpdateMealPlan(ctx, plan); err != nil {
			t.Fatalf("UpdateMealPlan failed: %v", err)
		}
		// Writing the same values again still matches the row.
		if err := store.UpdateMealPlan(ctx, plan); err != nil {
			t.Fatalf("Repeated UpdateMealPlan failed: %v", err)
		}

		retrieved, err := store.GetMealPlan(ctx, alice.ID, plan.ID)
		if err != nil {
			t.Fatalf("GetMealPlan failed: %v", err)
		}
		if retrieved.StartDate.String() != "2023-07-17" || retrieved.EndDate.String() != "2023-07-23" {
			t.Errorf("Dates not updated: got %s..%s", retrieved.StartDate, retrieved.EndDate)
		}
	})

	t.Run("UpdateMealPlan rejects other owners", func(t *testing.T) {
		plan := &models.MealPlan{
			OwnerID:   alice.ID,
			StartDate: models.NewDate(2023, time.July, 10),
			EndDate:   models.NewDate(2023, time.July, 16),
		}
		if err := store.CreateMealPlan(ctx, plan); err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		hijack := *plan
		hijack.OwnerID = bob.ID
		hijack.EndDate = models.NewDate(2023, time.July, 30)
		if err := store.UpdateMealPlan(ctx, &hijack); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}

		retrieved, err := store.GetMealPlan(ctx, alice.ID, plan.ID)
		if err != nil {
			t.Fatalf("GetMealPlan failed: %v", err)
		}
		if retrieved.EndDate.String() != "2023-07-16" {
			t.Errorf("EndDate changed by non-owner: got %s", retrieved.EndDate)
		}
	})

	t.Run("CHECK constraint rejects inverted range", func(t *testing.T) {
		plan := &models.MealPlan{
			OwnerID:   alice.ID,
			StartDate: models.NewDate(2023, time.July, 10),
			EndDate:   models.NewDate(2023, time.July, 9),
		}
		err := store.CreateMealPlan(ctx, plan)
		if err == nil {
			t.Error("Expected constraint error for end before start, got nil")
		}
		if errors.Is(err, storage.ErrUnknownOwner) {
			t.Errorf("CHECK violation reported as ErrUnknownOwner: %v", err)
		}
	})

	t.Run("CreateMealPlan rejects unknown owner", func(t *testing.T) {
		plan := &models.MealPlan{
			OwnerID:   "no-such-user",
			StartDate: models.NewDate(2023, time.July, 10),
			EndDate:   models.NewDate(2023, time.July, 16),
		}
		if err := store.CreateMealPlan(ctx, plan); !errors.Is(err, storage.ErrUnknownOwner) {
			t.Errorf("Expected ErrUnknownOwner, got %v", err)
		}
	})

	t.Run("DeleteMealPlan removes plan and is owner scoped", func(t *testing.T) {
		plan := &models.MealPlan{
			OwnerID:   alice.ID,
			StartDate: models.NewDate(2023, time.July, 10),
			EndDate:   models.NewDate(2023, time.July, 16),
		}
		if err := store.CreateMealPlan(ctx, plan); err != nil {
			t.Fatalf("CreateMealPlan failed: %v", err)
		}

		if err := store.DeleteMealPlan(ctx, bob.ID, plan.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound deleting as non-owner, got %v", err)
		}

		if err := store.DeleteMealPlan(ctx, alice.ID, plan.ID); err != nil {
			t.Fatalf("DeleteMealPlan failed: %v", err)
		}

		if _, err := store.GetMealPlan(ctx, alice.ID, plan.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteMealPlan(ctx, alice.ID, plan.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSQLiteStoreUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, store, "Someone@Example.com ")

	t.Run("GetUserByEmail normalizes the address", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "SOMEONE@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, user.ID)
		}
		if got.Email != "someone@example.com" {
			t.Errorf("Email not normalized: got %q", got.Email)
		}
	})

	t.Run("GetUserByID", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if got.DisplayName != "Test User" {
			t.Errorf("DisplayName mismatch: got %q", got.DisplayName)
		}
	})

	t.Run("missing users return ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("someone@example.com", "Dup", "hash")
		if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("Expected ErrDuplicate, got %v", err)
		}
	})
}
