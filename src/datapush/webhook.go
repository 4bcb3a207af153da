package datapush

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"AirQualityEurope/src/processor"
)

const (
	RetryTimes    = 5
	RetryInterval = 2 * time.Second
)

// Notifier posts daily summaries to a DingTalk-compatible robot webhook.
type Notifier struct {
	URL      string
	Client   *http.Client
	Retries  int
	Interval time.Duration
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		URL:      url,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Retries:  RetryTimes,
		Interval: RetryInterval,
	}
}

type markdownMessage struct {
	MsgType  string `json:"msgtype"`
	Markdown struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"markdown"`
}

// PushDailySummary sends the KPI block for the latest day, retrying
// transient delivery failures a bounded number of times.
func (n *Notifier) PushDailySummary(s processor.Summary, points int) error {
	msg := markdownMessage{MsgType: "markdown"}
	msg.Markdown.Title = "Air Quality Europe — " + s.Date
	msg.Markdown.Text = fmt.Sprintf(
		"### Air Quality Europe — %s\n- Cities: **%d**\n- Countries: **%d**\n- Mean EAQI: **%.1f** (%s)\n- Points on map: %d",
		s.Date, s.Cities, s.Countries, s.MeanAQI, processor.TierLabel(s.MeanAQI, points > 0), points)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < n.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(n.Interval)
		}
		lastErr = n.post(payload)
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("push summary after %d attempts: %w", n.Retries, lastErr)
}

func (n *Notifier) post(payload []byte) error {
	resp, err := n.Client.Post(n.URL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
