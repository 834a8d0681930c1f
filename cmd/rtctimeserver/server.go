package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ajanata/rtc/host/report"
	"github.com/ajanata/rtc/timeserver"
)

var errDisconnected = errors.New("device disconnected")

type flusher interface {
	Flush() error
}

type server struct {
	name      string
	client    *timeserver.Client
	port      flusher
	setEvery  int
	reporters []report.Reporter
	now       func() time.Time
	out       io.Writer
}

// run issues one command per tick until ctx is done or the device goes away. The first command sets the clock.
func (s *server) run(ctx context.Context, ticks <-chan time.Time, connected func() bool) error {
	if s.setEvery < 1 {
		s.setEvery = 1
	}
	for i := 0; ; i++ {
		if !connected() {
			return errDisconnected
		}
		if err := s.step(i); err != nil {
			// a failed command doesn't end the session; the logger may just be busy
			fmt.Fprintf(s.out, "%s: %v\n", s.name, err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
		}
	}
}

func (s *server) step(i int) error {
	// drop any late reply to an earlier command
	if err := s.port.Flush(); err != nil {
		return err
	}
	if i%s.setEvery == 0 {
		now := s.now().UTC()
		if err := s.client.SetTime(now); err != nil {
			return fmt.Errorf("setting time: %w", err)
		}
		fmt.Fprintf(s.out, "%s: time set to %s\n", s.name, now.Format(time.ANSIC))
		return nil
	}

	t, err := s.client.ReadTime()
	if err != nil {
		return fmt.Errorf("reading time: %w", err)
	}
	r := report.Reading{Device: s.name, Clock: t, Host: s.now()}
	for _, rep := range s.reporters {
		if err := rep.Report(r); err != nil {
			fmt.Fprintf(s.out, "%s: reporting: %v\n", s.name, err)
		}
	}
	return nil
}
