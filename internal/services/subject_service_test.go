package services

import (
	"testing"

	"studyhub/internal/models"
	"studyhub/internal/pagination"
	"studyhub/internal/testutil"
)

func TestCreateSubject(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)

		subject, err := svc.CreateSubject(user.ID, "Linear Algebra", 2, "#EF4444")
		testutil.AssertNoError(t, err)

		if subject.ID == "" {
			t.Fatal("expected non-empty subject ID")
		}
		if subject.Period != 2 {
			t.Errorf("expected period 2, got %d", subject.Period)
		}
		if subject.Color != "#EF4444" {
			t.Errorf("expected color #EF4444, got %s", subject.Color)
		}
	})

	t.Run("default_color", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)

		subject, err := svc.CreateSubject(user.ID, "Physics", 1, "")
		testutil.AssertNoError(t, err)

		var stored models.Subject
		testutil.AssertNoError(t, db.First(&stored, "id = ?", subject.ID).Error)
		if stored.Color != "#3B82F6" {
			t.Errorf("expected default color #3B82F6, got %s", stored.Color)
		}
	})

	t.Run("duplicate_name_same_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubject(user.ID, "Calculus", 1, "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateSubject(user.ID, "Calculus", 1, "")
		testutil.AssertAppError(t, err, "SUBJECT_EXISTS")
	})

	t.Run("same_name_different_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubject(user.ID, "Calculus", 1, "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateSubject(user.ID, "Calculus", 2, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("same_name_different_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubject(alice.ID, "Chemistry", 1, "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateSubject(bob.ID, "Chemistry", 1, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubject(user.ID, "", 1, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateSubject(user.ID, "History", 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserSubjects(t *testing.T) {
	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestSubject(t, db, alice.ID)
		testutil.CreateTestSubject(t, db, alice.ID)
		testutil.CreateTestSubject(t, db, bob.ID)

		result, err := svc.GetUserSubjects(alice.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 subjects for alice, got %d", result.TotalItems)
		}
		for _, subject := range result.Data {
			if subject.UserID != alice.ID {
				t.Errorf("subject %s belongs to %s, not alice", subject.ID, subject.UserID)
			}
		}
	})

	t.Run("filtered_by_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestSubjectInPeriod(t, db, user.ID, 1)
		testutil.CreateTestSubjectInPeriod(t, db, user.ID, 2)
		testutil.CreateTestSubjectInPeriod(t, db, user.ID, 2)

		period := 2
		result, err := svc.GetUserSubjects(user.ID, &period, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 subjects in period 2, got %d", result.TotalItems)
		}
	})

	t.Run("ordered_by_period_then_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		for _, s := range []struct {
			name   string
			period int
		}{
			{"Zoology", 1},
			{"Algebra", 2},
			{"Botany", 1},
		} {
			_, err := svc.CreateSubject(user.ID, s.name, s.period, "")
			testutil.AssertNoError(t, err)
		}

		result, err := svc.GetUserSubjects(user.ID, nil, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		got := make([]string, 0, len(result.Data))
		for _, subject := range result.Data {
			got = append(got, subject.Name)
		}
		want := []string{"Botany", "Zoology", "Algebra"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, got)
			}
		}
	})

	t.Run("pagination", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		for i := 0; i < 5; i++ {
			testutil.CreateTestSubject(t, db, user.ID)
		}

		result, err := svc.GetUserSubjects(user.ID, nil, pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Errorf("expected 2 items on page 2, got %d", len(result.Data))
		}
		if result.TotalItems != 5 {
			t.Errorf("expected 5 total items, got %d", result.TotalItems)
		}
		if result.TotalPages != 3 {
			t.Errorf("expected 3 total pages, got %d", result.TotalPages)
		}
	})
}

func TestGetSubjectByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestSubject(t, db, user.ID)

		subject, err := svc.GetSubjectByID(user.ID, created.ID)
		testutil.AssertNoError(t, err)

		if subject.Name != created.Name {
			t.Errorf("expected name %s, got %s", created.Name, subject.Name)
		}
	})

	t.Run("other_users_subject_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		subject := testutil.CreateTestSubject(t, db, alice.ID)

		_, err := svc.GetSubjectByID(bob.ID, subject.ID)
		testutil.AssertAppError(t, err, "SUBJECT_NOT_FOUND")
	})
}

func TestUpdateSubject(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(n int) *int { return &n }

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestSubjectInPeriod(t, db, user.ID, 4)

		updated, err := svc.UpdateSubject(user.ID, created.ID, UpdateSubjectParams{
			Name: strPtr("Renamed"),
		})
		testutil.AssertNoError(t, err)

		if updated.Name != "Renamed" {
			t.Errorf("expected Renamed, got %s", updated.Name)
		}
		if updated.Period != 4 {
			t.Errorf("expected period untouched at 4, got %d", updated.Period)
		}
	})

	t.Run("empty_name_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestSubject(t, db, user.ID)

		_, err := svc.UpdateSubject(user.ID, created.ID, UpdateSubjectParams{Name: strPtr("")})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_period_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestSubject(t, db, user.ID)

		_, err := svc.UpdateSubject(user.ID, created.ID, UpdateSubjectParams{Period: intPtr(0)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("cross_user_update_does_not_mutate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		subject := testutil.CreateTestSubject(t, db, alice.ID)

		_, err := svc.UpdateSubject(bob.ID, subject.ID, UpdateSubjectParams{Name: strPtr("Hijacked")})
		testutil.AssertAppError(t, err, "SUBJECT_NOT_FOUND")

		var stored models.Subject
		testutil.AssertNoError(t, db.First(&stored, "id = ?", subject.ID).Error)
		if stored.Name != subject.Name {
			t.Errorf("expected name unchanged, got %s", stored.Name)
		}
	})
}

func TestDeleteSubject(t *testing.T) {
	t.Run("deletes_notes_and_detaches_events", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		user := testutil.CreateTestUser(t, db)
		subject := testutil.CreateTestSubject(t, db, user.ID)
		note := testutil.CreateTestNote(t, db, user.ID, subject.ID)

		eventType := testutil.CreateTestEventType(t, db, 3)
		event := testutil.CreateTestEvent(t, db, user.ID, eventType.ID)
		testutil.AssertNoError(t, db.Model(event).Update("subject_id", subject.ID).Error)

		testutil.AssertNoError(t, svc.DeleteSubject(user.ID, subject.ID))

		var noteCount int64
		db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&noteCount)
		if noteCount != 0 {
			t.Error("expected notes to be deleted with their subject")
		}

		var stored models.CalendarEvent
		testutil.AssertNoError(t, db.First(&stored, "id = ?", event.ID).Error)
		if stored.SubjectID != nil {
			t.Error("expected event subject to be detached")
		}
	})

	t.Run("cross_user_delete_is_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSubjectService(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		subject := testutil.CreateTestSubject(t, db, alice.ID)

		err := svc.DeleteSubject(bob.ID, subject.ID)
		testutil.AssertAppError(t, err, "SUBJECT_NOT_FOUND")

		var count int64
		db.Model(&models.Subject{}).Where("id = ?", subject.ID).Count(&count)
		if count != 1 {
			t.Error("expected subject to survive a cross-user delete attempt")
		}
	})
}
