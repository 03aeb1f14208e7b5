package metrics

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/dropapi/base/env"
	"github.com/x-xyz/dropapi/base/log"
)

const (
	// ddRate is the rate to pass metrics to datadog agent. 1 means always
	ddRate = 1
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10

	ddPort = 8125
)

var (
	initOnce = sync.Once{}

	ddClient statsCli
)

type statsCli interface {
	Count(name string, value int64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// noopCli keeps metric call sites harmless when no agent is configured,
// which is the normal state in tests and local runs.
type noopCli struct{}

func (noopCli) Count(string, int64, []string, float64) error { return nil }

func (noopCli) TimeInMilliseconds(string, float64, []string, float64) error { return nil }

func initDDClient() {
	host := viper.GetString("datadog_host")
	if host == "" {
		ddClient = noopCli{}
		return
	}
	addr := fmt.Sprintf("%s:%d", host, ddPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")
	client, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	ddClient = client
}

// Service bumps counters and timers under a fixed metric prefix.
type Service struct {
	prefix string
	tags   []string
}

func New(prefix string) *Service {
	return &Service{
		prefix: prefix,
		tags: []string{
			"pod:" + env.PodName(),
			"env:" + env.EnvName(),
			"app:" + env.AppName(),
		},
	}
}

// BumpSum bumps the sum for the given key.
func (s *Service) BumpSum(key string, val int64, tags ...string) {
	initOnce.Do(initDDClient)
	if err := ddClient.Count(s.prefix+"."+key, val, append(s.tags, parseTags(tags)...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key}).Error("BumpSum fail")
	}
}

// BumpTime starts a timer for the given key. Calling End() on the returned
// value reports the elapsed time:
//
//	defer s.BumpTime("claim.time").End()
func (s *Service) BumpTime(key string, tags ...string) interface{ End() } {
	initOnce.Do(initDDClient)
	return &timeTracker{
		service: s,
		start:   time.Now(),
		key:     key,
		tags:    parseTags(tags),
	}
}

type timeTracker struct {
	service *Service
	start   time.Time
	key     string
	tags    []string
}

func (t *timeTracker) End() {
	elapsed := float64(time.Since(t.start)) / float64(time.Millisecond)
	key := t.service.prefix + "." + t.key
	if err := ddClient.TimeInMilliseconds(key, elapsed, append(t.service.tags, t.tags...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": t.key}).Error("BumpTime fail")
	}
}

// parseTags converts alternating key/value strings into datadog "k:v" tags.
func parseTags(kvs []string) []string {
	tags := make([]string, 0, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		tags = append(tags, strings.Join([]string{kvs[i], kvs[i+1]}, ":"))
	}
	return tags
}
