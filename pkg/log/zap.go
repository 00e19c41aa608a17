/*
Copyright 2018 The pdfcpu Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package log

import (
	"fmt"

	"go.uber.org/zap"
)

// zapAdapter satisfies Logger on top of a *zap.SugaredLogger so the named
// loggers can be backed by structured, leveled logging instead of the
// bare standard-library logger.
type zapAdapter struct {
	s     *zap.SugaredLogger
	level string
}

func (z *zapAdapter) Printf(format string, args ...interface{}) {
	switch z.level {
	case "debug":
		z.s.Debugf(format, args...)
	default:
		z.s.Infof(format, args...)
	}
}

func (z *zapAdapter) Println(args ...interface{}) {
	z.Printf(fmt.Sprint(args...))
}

func (z *zapAdapter) Fatalf(format string, args ...interface{}) {
	z.s.Fatalf(format, args...)
}

func (z *zapAdapter) Fatalln(args ...interface{}) {
	z.s.Fatal(args...)
}

// SetDefaultZapLoggers wires all 4 named loggers to a single production
// zap.Logger, tagged by name so log lines can be filtered per stage.
func SetDefaultZapLoggers() error {
	zl, err := zap.NewProduction()
	if err != nil {
		return err
	}
	SetDebugLogger(&zapAdapter{s: zl.Named("debug").Sugar(), level: "debug"})
	SetInfoLogger(&zapAdapter{s: zl.Named("info").Sugar()})
	SetStatsLogger(&zapAdapter{s: zl.Named("stats").Sugar()})
	SetTraceLogger(&zapAdapter{s: zl.Named("trace").Sugar(), level: "debug"})
	return nil
}

// SetDevelopmentZapLoggers wires all 4 named loggers to a human-readable
// development zap.Logger (console encoding, no sampling).
func SetDevelopmentZapLoggers() error {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	SetDebugLogger(&zapAdapter{s: zl.Named("debug").Sugar(), level: "debug"})
	SetInfoLogger(&zapAdapter{s: zl.Named("info").Sugar()})
	SetStatsLogger(&zapAdapter{s: zl.Named("stats").Sugar()})
	SetTraceLogger(&zapAdapter{s: zl.Named("trace").Sugar(), level: "debug"})
	return nil
}
