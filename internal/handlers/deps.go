package handlers

import (
	"github.com/aircooling/backoffice/internal/backend"
	"github.com/aircooling/backoffice/internal/domain/appointment"
	"github.com/aircooling/backoffice/internal/domain/crm"
	"github.com/aircooling/backoffice/internal/domain/lead"
	"github.com/aircooling/backoffice/internal/domain/payment"
	"github.com/aircooling/backoffice/internal/infra/events"
	"github.com/aircooling/backoffice/internal/infra/repository"
	"github.com/aircooling/backoffice/internal/infra/storage"
	"github.com/aircooling/backoffice/internal/mailer"
	"github.com/aircooling/backoffice/internal/monitoring"
	"github.com/aircooling/backoffice/internal/usecase/email"
)

// Repositories are built per request around the handle whose privileges the
// query must run with.
type Repositories struct {
	Appointments func(q backend.Querier) appointment.Repository
	Payments     func(q backend.Querier) payment.Repository
	CRM          func(q backend.Querier) crm.Repository
	Leads        func(q backend.Querier) lead.Repository
}

func GormRepositories() Repositories {
	return Repositories{
		Appointments: func(q backend.Querier) appointment.Repository {
			return repository.NewAppointmentGormRepository(q)
		},
		Payments: func(q backend.Querier) payment.Repository {
			return repository.NewPaymentGormRepository(q)
		},
		CRM: func(q backend.Querier) crm.Repository {
			return repository.NewCRMGormRepository(q)
		},
		Leads: func(q backend.Querier) lead.Repository {
			return repository.NewLeadGormRepository(q)
		},
	}
}

type Deps struct {
	Factory  *backend.Factory
	Repos    Repositories
	Events   events.Publisher
	Mailer   mailer.Sender
	Uploader storage.Uploader
	Metrics  *monitoring.Metrics

	EmailFrom string
}

func (d Deps) bookingConfirmation() *email.SendBookingConfirmation {
	return email.NewSendBookingConfirmation(d.Mailer, d.EmailFrom, d.Metrics)
}
