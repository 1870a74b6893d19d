package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"oncotrack/internal/delivery/dto"
	"oncotrack/internal/domain/entity"
	domainRepo "oncotrack/internal/domain/repository"
	"oncotrack/internal/repository"

	"gorm.io/gorm"
)

func newMoodUsecase(env *testEnv, t *testing.T, at time.Time) MoodUsecase {
	return NewMoodUsecase(env.db, env.log, repository.NewMoodRepository(), env.audit, env.days(t, at))
}

func TestRecordMoodThenUpdateTodayKeepsOneRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	// 23:30 in Sao Paulo is already the next day in UTC.
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, mustLoad(t, "America/Sao_Paulo"))
	moods := newMoodUsecase(env, t, now)

	recorded, created, err := moods.RecordMood(ctx, 1, &dto.RecordMoodRequest{Label: "Feliz"})
	if err != nil {
		t.Fatalf("RecordMood() unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected first mood of the day to be created")
	}
	if recorded.Day != "2024-03-10" {
		t.Fatalf("expected local day key 2024-03-10, got %s", recorded.Day)
	}
	if !recorded.Date.Equal(now) {
		t.Fatalf("expected date %s, got %s", now, recorded.Date)
	}

	updated, err := moods.UpdateTodayMood(ctx, 1, &dto.UpdateMoodRequest{Label: "Triste"})
	if err != nil {
		t.Fatalf("UpdateTodayMood() unexpected error: %v", err)
	}
	if updated.ID != recorded.ID || updated.Label != "Triste" {
		t.Fatalf("expected row %d relabeled Triste, got %+v", recorded.ID, updated)
	}

	list, err := moods.ListMoods(ctx, 1)
	if err != nil {
		t.Fatalf("ListMoods() unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].Label != "Triste" {
		t.Fatalf("expected a single Triste mood, got %+v", list)
	}

	want := []string{entity.AuditActionMoodRecord, entity.AuditActionMoodUpdate}
	if got := env.auditActions(t, 1); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected audit actions %v, got %v", want, got)
	}
}

func TestRecordMoodTwiceReplacesLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	first, created, err := newMoodUsecase(env, t, now).RecordMood(ctx, 1, &dto.RecordMoodRequest{Label: "Feliz"})
	if err != nil || !created {
		t.Fatalf("first RecordMood() = created %v, err %v", created, err)
	}

	later := newMoodUsecase(env, t, now.Add(6*time.Hour))
	second, created, err := later.RecordMood(ctx, 1, &dto.RecordMoodRequest{Label: "Ansioso"})
	if err != nil {
		t.Fatalf("second RecordMood() unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected second mood of the day to replace the first")
	}
	if second.ID != first.ID || second.Label != "Ansioso" {
		t.Fatalf("expected row %d relabeled, got %+v", first.ID, second)
	}
	if !second.Date.Equal(first.Date) {
		t.Fatalf("expected original date %s to be kept, got %s", first.Date, second.Date)
	}

	list, _ := later.ListMoods(ctx, 1)
	if len(list) != 1 {
		t.Fatalf("expected one mood, got %d", len(list))
	}
}

func TestUpdateTodayMoodWithoutMood(t *testing.T) {
	env := newTestEnv(t)
	moods := newMoodUsecase(env, t, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))

	_, err := moods.UpdateTodayMood(context.Background(), 1, &dto.UpdateMoodRequest{Label: "Triste"})
	if !errors.Is(err, ErrMoodNotFound) {
		t.Fatalf("expected ErrMoodNotFound, got %v", err)
	}
}

func TestMoodTodayIsScopedToTheCalendarDay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	day1 := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	day2 := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	if _, _, err := newMoodUsecase(env, t, day1).RecordMood(ctx, 1, &dto.RecordMoodRequest{Label: "Feliz"}); err != nil {
		t.Fatalf("RecordMood() unexpected error: %v", err)
	}

	next := newMoodUsecase(env, t, day2)
	if _, err := next.GetTodayMood(ctx, 1); !errors.Is(err, ErrMoodNotFound) {
		t.Fatalf("expected no mood at the next midnight, got %v", err)
	}

	_, created, err := next.RecordMood(ctx, 1, &dto.RecordMoodRequest{Label: "Cansado"})
	if err != nil || !created {
		t.Fatalf("RecordMood() on a new day = created %v, err %v", created, err)
	}

	today, err := next.GetTodayMood(ctx, 1)
	if err != nil {
		t.Fatalf("GetTodayMood() unexpected error: %v", err)
	}
	if today.Label != "Cansado" {
		t.Fatalf("expected today's label Cansado, got %s", today.Label)
	}

	list, _ := next.ListMoods(ctx, 1)
	if len(list) != 2 || list[0].Label != "Cansado" || list[1].Label != "Feliz" {
		t.Fatalf("expected moods ordered by date desc, got %+v", list)
	}
}

func TestRecordMoodRejectsBlankLabel(t *testing.T) {
	env := newTestEnv(t)
	moods := newMoodUsecase(env, t, time.Now())

	if _, _, err := moods.RecordMood(context.Background(), 1, &dto.RecordMoodRequest{Label: "   "}); !errors.Is(err, ErrInvalidLabel) {
		t.Fatalf("expected ErrInvalidLabel, got %v", err)
	}
}

// racingMoodRepository inserts a competing mood for the same day just before
// the caller's upsert, as a concurrent first-of-day request would.
type racingMoodRepository struct {
	domainRepo.MoodRepository
}

func (r racingMoodRepository) Upsert(db *gorm.DB, mood *entity.Mood) error {
	competitor := &entity.Mood{UserID: mood.UserID, Label: "Calma", Date: mood.Date, Day: mood.Day}
	if err := r.MoodRepository.Upsert(db, competitor); err != nil {
		return err
	}
	return r.MoodRepository.Upsert(db, mood)
}

func TestRecordMoodLosingInsertRaceReportsReplacement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	moods := NewMoodUsecase(env.db, env.log, racingMoodRepository{repository.NewMoodRepository()}, env.audit, env.days(t, now))

	recorded, created, err := moods.RecordMood(ctx, 1, &dto.RecordMoodRequest{Label: "Feliz"})
	if err != nil {
		t.Fatalf("RecordMood() unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected the mood to replace the concurrently inserted row")
	}
	if recorded.Label != "Feliz" {
		t.Fatalf("expected label Feliz, got %s", recorded.Label)
	}

	want := []string{entity.AuditActionMoodUpdate}
	if got := env.auditActions(t, 1); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected audit actions %v, got %v", want, got)
	}
}
