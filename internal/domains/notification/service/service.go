package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmlTemplate "html/template"
	"mediconnect/config"
	"mediconnect/infras/kafka"
	"mediconnect/infras/mail"
	"mediconnect/infras/metrics"
	"mediconnect/infras/otel"
	"mediconnect/infras/sms"
	appointmentModel "mediconnect/internal/domains/appointment/model"
	doctorModel "mediconnect/internal/domains/doctor/model"
	doctorRepo "mediconnect/internal/domains/doctor/repository"
	"mediconnect/internal/domains/notification/model"
	patientModel "mediconnect/internal/domains/patient/model"
	patientRepo "mediconnect/internal/domains/patient/repository"
	"mediconnect/shared"
	"mediconnect/shared/constant"
	"mediconnect/shared/timezone"
	"strings"
	textTemplate "text/template"

	"github.com/rs/zerolog/log"
)

//go:embed templates
var templateFS embed.FS

var (
	errPatientNotFound = errors.New("patient not found")
	errDoctorNotFound  = errors.New("doctor not found")
)

// Notifier tells a patient about their appointment. The email outcome is the
// returned error; the other channels are best effort.
type Notifier interface {
	NotifyRescheduleNeeded(ctx context.Context, apt appointmentModel.Appointment) error
	NotifyRescheduleReminder(ctx context.Context, apt appointmentModel.Appointment) error
	NotifyUpcoming(ctx context.Context, apt appointmentModel.Appointment) error
}

type templates struct {
	text *textTemplate.Template
	html *htmlTemplate.Template
}

type dispatcher struct {
	patientRepo patientRepo.Patient
	doctorRepo  doctorRepo.Doctor
	mail        mail.Sender
	sms         sms.Sender
	kafka       kafka.Client
	metrics     *metrics.Metrics
	cfg         *config.Config
	otel        otel.Otel
	templates   map[model.Kind]templates
}

func New(
	patientRepo patientRepo.Patient,
	doctorRepo doctorRepo.Doctor,
	mailSender mail.Sender,
	smsSender sms.Sender,
	kafkaClient kafka.Client,
	m *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) (Notifier, error) {
	parsed := make(map[model.Kind]templates, len(model.Kinds))

	for _, kind := range model.Kinds {
		text, err := textTemplate.ParseFS(templateFS, "templates/"+string(kind)+".txt")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s text template: %w", kind, err)
		}

		html, err := htmlTemplate.ParseFS(templateFS, "templates/"+string(kind)+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s html template: %w", kind, err)
		}

		parsed[kind] = templates{text: text, html: html}
	}

	return &dispatcher{
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		mail:        mailSender,
		sms:         smsSender,
		kafka:       kafkaClient,
		metrics:     m,
		cfg:         cfg,
		otel:        otel,
		templates:   parsed,
	}, nil
}

func (d *dispatcher) NotifyRescheduleNeeded(ctx context.Context, apt appointmentModel.Appointment) error {
	return d.dispatch(ctx, model.KindRescheduleNeeded, apt)
}

func (d *dispatcher) NotifyRescheduleReminder(ctx context.Context, apt appointmentModel.Appointment) error {
	return d.dispatch(ctx, model.KindRescheduleReminder, apt)
}

func (d *dispatcher) NotifyUpcoming(ctx context.Context, apt appointmentModel.Appointment) error {
	return d.dispatch(ctx, model.KindUpcoming, apt)
}

func (d *dispatcher) dispatch(ctx context.Context, kind model.Kind, apt appointmentModel.Appointment) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".notification."+string(kind))
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("appointment.id", apt.ID)

	patient, doctor, err := d.participants(ctx, apt)
	if err != nil {
		d.metrics.ObserveNotification(string(kind), model.ChannelEmail, err)

		return err
	}

	notice := model.NewNotice(d.cfg.App.Name, d.cfg.App.PortalURL, apt, patient, doctor)

	msg, smsBody, err := d.render(kind, notice)
	if err != nil {
		d.metrics.ObserveNotification(string(kind), model.ChannelEmail, err)

		return err
	}

	err = d.mail.Send(ctx, msg)
	d.metrics.ObserveNotification(string(kind), model.ChannelEmail, err)

	if err != nil {
		log.Error().Err(err).Str("appointmentID", apt.ID).Str("kind", string(kind)).Msg("failed to send notification email")

		err = fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	if notice.PatientPhone != constant.Empty {
		smsErr := d.sms.Send(ctx, notice.PatientPhone, smsBody)
		d.metrics.ObserveNotification(string(kind), model.ChannelSMS, smsErr)

		if smsErr != nil {
			log.Warn().Err(smsErr).Str("appointmentID", apt.ID).Msg("failed to send notification sms")
		}
	}

	event := model.Event{
		Kind:          kind,
		AppointmentID: apt.ID,
		PatientID:     apt.PatientID,
		DoctorID:      apt.DoctorID,
		Date:          apt.Date.String(),
		Time:          apt.Time.Clock(),
		Status:        string(apt.Status),
		EmailSent:     err == nil,
		OccurredAt:    timezone.Now(),
	}

	kafkaErr := d.kafka.SendMessages(ctx, d.cfg.Kafka.NotificationTopic, kafka.Message{Key: apt.ID, Value: event})
	d.metrics.ObserveNotification(string(kind), model.ChannelEvent, kafkaErr)

	if kafkaErr != nil {
		log.Warn().Err(kafkaErr).Str("appointmentID", apt.ID).Msg("failed to publish notification event")
	}

	return err
}

func (d *dispatcher) participants(ctx context.Context, apt appointmentModel.Appointment) (patientModel.Patient, doctorModel.Doctor, error) {
	patient, err := d.patientRepo.Get(ctx, shared.FilterByID(apt.PatientID, patientModel.FieldID, patientModel.TableName))
	if err != nil {
		return patient, doctorModel.Doctor{}, fmt.Errorf("failed to get patient: %w", err)
	}

	if patient.ID == constant.Empty {
		return patient, doctorModel.Doctor{}, fmt.Errorf("%w: %s", errPatientNotFound, apt.PatientID)
	}

	doctor, err := d.doctorRepo.Get(ctx, shared.FilterByID(apt.DoctorID, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		return patient, doctor, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty {
		return patient, doctor, fmt.Errorf("%w: %s", errDoctorNotFound, apt.DoctorID)
	}

	return patient, doctor, nil
}

func (d *dispatcher) render(kind model.Kind, notice model.Notice) (mail.Message, string, error) {
	tmpl := d.templates[kind]

	var subject, text, smsBody, html bytes.Buffer

	for name, buf := range map[string]*bytes.Buffer{"subject": &subject, "text": &text, "sms": &smsBody} {
		if err := tmpl.text.ExecuteTemplate(buf, name, notice); err != nil {
			return mail.Message{}, "", fmt.Errorf("failed to render %s %s: %w", kind, name, err)
		}
	}

	if err := tmpl.html.Execute(&html, notice); err != nil {
		return mail.Message{}, "", fmt.Errorf("failed to render %s html: %w", kind, err)
	}

	return mail.Message{
		To:      notice.PatientEmail,
		ToName:  notice.PatientName,
		Subject: strings.TrimSpace(subject.String()),
		Text:    strings.TrimSpace(text.String()),
		HTML:    html.String(),
	}, strings.TrimSpace(smsBody.String()), nil
}
