/*
   Copyright 2025 The DIRPX Authors

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

package render

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts rendered failures by kind and envelope code.
type Metrics struct {
	rendered *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg. A nil reg
// creates unregistered counters, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		rendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dweb_rendered_errors_total",
				Help: "Total number of errors rendered into responses by kind and code",
			},
			[]string{"kind", "code"},
		),
	}
	if reg != nil {
		if err := reg.Register(m.rendered); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Collector exposes the underlying counter, mainly for tests.
func (m *Metrics) Collector() *prometheus.CounterVec { return m.rendered }

func (m *Metrics) observe(kind string, code int) {
	if m == nil {
		return
	}
	m.rendered.WithLabelValues(kind, strconv.Itoa(code)).Inc()
}
