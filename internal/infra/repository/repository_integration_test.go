package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aircooling/backoffice/internal/backend"
	"github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/domain/crm"
	"github.com/aircooling/backoffice/internal/domain/payment"
	"github.com/aircooling/backoffice/internal/httperr"
	"github.com/aircooling/backoffice/internal/models"
)

// setupDB starts a throwaway Postgres with the platform's roles. The schema
// is created here only; production code never migrates.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "app",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/app?sslmode=disable", host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Profile{},
		&models.Appointment{},
		&models.Payment{},
		&models.PipelineRecord{},
		&models.QuoteRequest{},
		&models.PlanSketch{},
		&models.InterventionVoucher{},
		&models.AuditLog{},
	))

	for _, stmt := range []string{
		`CREATE ROLE anon NOLOGIN`,
		`CREATE ROLE authenticated NOLOGIN`,
		`CREATE ROLE service_role NOLOGIN BYPASSRLS`,
		`GRANT USAGE ON SCHEMA public TO anon, authenticated, service_role`,
		`GRANT ALL ON ALL TABLES IN SCHEMA public TO service_role`,
		`GRANT ALL ON ALL SEQUENCES IN SCHEMA public TO service_role`,
	} {
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}
	return db
}

// countSelects counts statements going through gorm's query callback chain.
// A Preload shows up as a second SELECT.
func countSelects(t *testing.T, db *gorm.DB) *atomic.Int64 {
	t.Helper()
	n := new(atomic.Int64)
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:count_selects", func(*gorm.DB) {
		n.Add(1)
	}))
	return n
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	selects := countSelects(t, db)
	f := backend.NewFactory(backend.Options{DB: db, ProjectURL: "https://abcd.supabase.co"})
	svc := f.Service()

	appointments := NewAppointmentGormRepository(svc)
	leads := NewLeadGormRepository(svc)
	pipeline := NewCRMGormRepository(svc)
	payments := NewPaymentGormRepository(svc)
	profiles := NewProfileGormRepository(f)

	day := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)
	tech := "6f1c7f5e-1b7a-4f0e-9d51-0d5c0d0e7a11"

	t.Run("booking reuses the client by email", func(t *testing.T) {
		first := &models.Appointment{
			ScheduledAt: day.Add(8 * time.Hour), Slot: "08:00-10:00",
			ServiceType: "entretien", Status: "pending", TrackingID: "01JBOOK00000000000000000001",
			TechnicianID: &tech,
		}
		require.NoError(t, appointments.Book(ctx, &models.Client{FullName: "Jan Peeters", Email: "Jan@Example.be"}, first))

		second := &models.Appointment{
			ScheduledAt: day.Add(13 * time.Hour), Slot: "13:00-15:00",
			ServiceType: "installation", Status: "confirmed", TrackingID: "01JBOOK00000000000000000002",
		}
		require.NoError(t, appointments.Book(ctx, &models.Client{FullName: "Jan", Email: "jan@example.be"}, second))

		require.NotEmpty(t, first.ClientID)
		require.Equal(t, first.ClientID, second.ClientID)
		require.Equal(t, "jan@example.be", second.Client.Email)
	})

	t.Run("admin listing", func(t *testing.T) {
		selects.Store(0)
		all, err := appointments.List(ctx, appointment.ListFilter{Limit: 50})
		require.NoError(t, err)
		require.EqualValues(t, 1, selects.Load())
		require.Len(t, all, 2)
		require.Equal(t, "installation", all[0].ServiceType)
		require.NotNil(t, all[0].Client)
		require.Equal(t, "jan@example.be", all[0].Client.Email)

		pending, err := appointments.List(ctx, appointment.ListFilter{Status: appointment.StatusPending, Limit: 50})
		require.NoError(t, err)
		require.Len(t, pending, 1)

		one, err := appointments.List(ctx, appointment.ListFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, one, 1)
	})

	t.Run("technician day", func(t *testing.T) {
		mine, err := appointments.ListForPeriod(ctx, &tech, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, mine, 1)

		selects.Store(0)
		all, err := appointments.ListForPeriod(ctx, nil, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		require.EqualValues(t, 1, selects.Load())
		require.Len(t, all, 2)
		require.NotNil(t, all[1].Client)
		require.True(t, all[0].ScheduledAt.Before(all[1].ScheduledAt))
	})

	t.Run("voucher completes once", func(t *testing.T) {
		list, err := appointments.List(ctx, appointment.ListFilter{Status: appointment.StatusPending})
		require.NoError(t, err)
		id := list[0].ID

		now := time.Now()
		complete := func(work string) (*models.Appointment, error) {
			v := &models.InterventionVoucher{AppointmentID: id, TechnicianID: tech, WorkPerformed: work}
			return appointments.CompleteWithVoucher(ctx, v, func(ap *models.Appointment) error {
				return appointment.Complete(ap, v, true, now)
			})
		}

		done, err := complete("nettoyage filtres")
		require.NoError(t, err)
		require.Equal(t, "completed", done.Status)

		_, err = complete("again")
		require.ErrorIs(t, err, appointment.ErrInvalidState)

		var vouchers, audits int64
		require.NoError(t, db.Model(&models.InterventionVoucher{}).Count(&vouchers).Error)
		require.NoError(t, db.Model(&models.AuditLog{}).Where("action = ?", "appointment_completed").Count(&audits).Error)
		require.EqualValues(t, 1, vouchers)
		require.EqualValues(t, 1, audits)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		_, err := appointments.Cancel(ctx, "00000000-0000-0000-0000-000000000000", tech, func(*models.Appointment) error { return nil })
		require.Equal(t, httperr.KindNotFound, httperr.From(err).Kind)
	})

	t.Run("quote opens a crm record that can move", func(t *testing.T) {
		rec := &models.PipelineRecord{Stage: string(crm.StageNew), Title: "Devis climatisation"}
		require.NoError(t, leads.CreateQuote(ctx,
			&models.Client{FullName: "Els", Phone: "+32470000000"},
			&models.QuoteRequest{ServiceType: "installation", Locale: "nl"},
			rec,
		))
		require.NotEmpty(t, rec.ID)

		moved, err := pipeline.MoveStage(ctx, rec.ID, crm.StageWon, tech)
		require.NoError(t, err)
		require.Equal(t, "won", moved.Stage)

		selects.Store(0)
		board, err := pipeline.List(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, selects.Load())
		require.Len(t, board, 1)
		require.Equal(t, "Els", board[0].Client.FullName)
	})

	t.Run("payments window", func(t *testing.T) {
		for i, d := range []int{1, 2, 3} {
			require.NoError(t, db.Create(&models.Payment{
				AmountCents: int64(1000 * (i + 1)), Currency: "EUR",
				CreatedAt: time.Date(2026, 10, d, 12, 0, 0, 0, time.UTC),
			}).Error)
		}
		from := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)

		got, err := payments.List(ctx, payment.ListFilter{From: &from, To: &to, Limit: 50})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.EqualValues(t, 3000, got[0].AmountCents)
	})

	t.Run("profile role", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Profile{ID: tech, Role: "technicien"}).Error)

		role, err := profiles.ProfileRole(ctx, tech)
		require.NoError(t, err)
		require.Equal(t, "technicien", role)

		_, err = profiles.ProfileRole(ctx, "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
	})

	t.Run("anonymous handle is denied", func(t *testing.T) {
		anon := NewPaymentGormRepository(f.Server(nil))
		_, err := anon.List(ctx, payment.ListFilter{})
		require.Equal(t, httperr.KindForbidden, httperr.From(err).Kind)
	})
}
