package report

import (
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	qt "github.com/frankban/quicktest"
)

type fakeToken struct {
	done bool
	err  error
}

func (t *fakeToken) Wait() bool                     { return t.done }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type message struct {
	topic    string
	qos      byte
	retained bool
	payload  string
}

// fakeClient records publishes; the other Client methods are not used by the reporter.
type fakeClient struct {
	mqtt.Client
	token        *fakeToken
	published    []message
	disconnected bool
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.published = append(f.published, message{topic, qos, retained, string(payload.([]byte))})
	return f.token
}

func (f *fakeClient) Disconnect(uint) { f.disconnected = true }

func TestMQTTReport(t *testing.T) {
	c := qt.New(t)
	client := &fakeClient{token: &fakeToken{done: true}}
	m := &MQTT{client: client, topic: "rtc/drift", timeout: time.Second}

	host := time.Date(2024, 5, 17, 15, 30, 45, 0, time.UTC)
	err := m.Report(Reading{Device: "logger", Clock: host.Add(3 * time.Second), Host: host})
	c.Assert(err, qt.IsNil)
	c.Assert(client.published, qt.DeepEquals, []message{{
		topic:   "rtc/drift",
		qos:     1,
		payload: `{"device":"logger","clock":1715959848,"host":1715959845,"drift_s":3}`,
	}})

	m.Close()
	c.Assert(client.disconnected, qt.IsTrue)
}

func TestMQTTReportErrors(t *testing.T) {
	c := qt.New(t)
	client := &fakeClient{token: &fakeToken{done: false}}
	m := &MQTT{client: client, topic: "rtc/drift", timeout: time.Millisecond}

	err := m.Report(Reading{Device: "logger"})
	c.Assert(err, qt.Equals, errTimeout)

	broken := errors.New("not connected")
	client.token = &fakeToken{done: true, err: broken}
	err = m.Report(Reading{Device: "logger"})
	c.Assert(err, qt.Equals, broken)
	c.Assert(client.published, qt.HasLen, 2)
}
