package main

import (
	"context"

	"github.com/Skyrin/go-dsbridge/catalogue"
	"github.com/Skyrin/go-dsbridge/config"
	"github.com/Skyrin/go-dsbridge/e"
	"github.com/Skyrin/go-dsbridge/event"
	"github.com/Skyrin/go-dsbridge/kafka"
	mskiam "github.com/Skyrin/go-dsbridge/kafka/aws/ec2"
	"github.com/Skyrin/go-dsbridge/reconcile"
	"github.com/Skyrin/go-dsbridge/scheduler"
	"github.com/Skyrin/go-dsbridge/sql"
	"github.com/rs/zerolog/log"
)

const (
	ECode0C0101 = e.Code0C01 + "01"
	ECode0C0102 = e.Code0C01 + "02"
	ECode0C0103 = e.Code0C01 + "03"
	ECode0C0104 = e.Code0C01 + "04"
	ECode0C0105 = e.Code0C01 + "05"
	ECode0C0106 = e.Code0C01 + "06"
	ECode0C0107 = e.Code0C01 + "07"
	ECode0C0108 = e.Code0C01 + "08"
)

// app the wired service and what has to be released on exit
type app struct {
	cfg     *config.Config
	svc     *reconcile.Service
	closers []func() error
}

// newApp loads the configuration and wires the service. The catalogue
// database is only connected when the command needs it, otherwise an empty
// catalogue is used
func newApp(ctx context.Context, configPath string, needsCatalogue bool) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if err := a.wire(ctx, needsCatalogue); err != nil {
		a.close()
		return nil, err
	}

	return a, nil
}

// loadConfig loads the configuration and sets the logging up from it
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, e.W(err, ECode0C0101)
	}
	config.SetupLogging(cfg.Log)

	return cfg, nil
}

// wire connects the dependencies and creates the service, whatever was opened
// is registered in closers even when it fails
func (a *app) wire(ctx context.Context, needsCatalogue bool) (err error) {
	cfg := a.cfg

	var store catalogue.Store = catalogue.NewMemoryStore()
	if needsCatalogue {
		db, err := sql.NewPostgresConn(ctx, cfg.Catalogue.ConnParam())
		if err != nil {
			return e.W(err, ECode0C0102)
		}
		a.closers = append(a.closers, db.Close)
		store = catalogue.NewPostgresStore(db, cfg.Catalogue.Table)
	}

	client, err := scheduler.NewClient(cfg.Scheduler.ClientConfig())
	if err != nil {
		return e.W(err, ECode0C0103)
	}

	pub, err := a.newPublisher(ctx)
	if err != nil {
		return e.W(err, ECode0C0104)
	}

	a.svc, err = reconcile.New(ctx, reconcile.Config{
		ProjectName:  cfg.Scheduler.ProjectName,
		PlatformURL:  cfg.Scheduler.PlatformURL,
		SchedulerURL: client.URL(),
	}, reconcile.NewDeps(client, store, pub))
	if err != nil {
		return e.W(err, ECode0C0105)
	}

	return nil
}

// newPublisher returns the kafka event publisher, or a no-op one if events
// are disabled
func (a *app) newPublisher(ctx context.Context) (pub event.Publisher, err error) {
	ec := a.cfg.Events
	if !ec.Enabled {
		return event.NopPublisher{}, nil
	}

	kc := kafka.ConnectionConfig{
		AddressList: ec.Brokers,
		NoTLS:       ec.NoTLS,
	}
	if ec.Region != "" {
		kc.SASLMechanism, err = mskiam.NewSASLMechanism(ctx, mskiam.SASLMechanismConfig{
			Region:          ec.Region,
			AccessKeyID:     ec.AccessKeyID,
			SecretAccessKey: ec.SecretAccessKey,
			SessionToken:    ec.SessionToken,
		})
		if err != nil {
			return nil, e.W(err, ECode0C0106)
		}
	}

	conn, err := kafka.NewConn(ctx, kc)
	if err != nil {
		return nil, e.W(err, ECode0C0107, "failed to connect to the event brokers")
	}

	kp, err := event.NewKafkaPublisher(conn, ec.Topic)
	if err != nil {
		_ = conn.Close()
		return nil, e.W(err, ECode0C0108)
	}
	a.closers = append(a.closers, kp.Close)

	return kp, nil
}

// close releases everything in reverse order, failures are only logged
func (a *app) close() {
	if a == nil {
		return
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
	a.closers = nil
}
