// Package alert warns users with notifications enabled about upcoming
// high-risk pressure days.
package alert

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/i474232898/pressure-headache/internal/weather"
)

// Alert is a single risk warning addressed to one profile.
type Alert struct {
	ProfileID      string            `json:"profileId"`
	ProfileName    string            `json:"profileName,omitempty"`
	Location       string            `json:"location"`
	Date           string            `json:"date"`
	Risk           weather.RiskLevel `json:"risk"`
	PressureChange float64           `json:"pressureChange"`
	Advice         string            `json:"advice"`
}

// Notifier delivers alerts.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, a Alert) error
}

// LogNotifier writes alerts to the application log. It is the fallback when
// no SNS topic is configured.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Name() string { return "log" }

func (n *LogNotifier) Notify(_ context.Context, a Alert) error {
	n.log.Info("pressure alert",
		zap.String("profileId", a.ProfileID),
		zap.String("location", a.Location),
		zap.String("date", a.Date),
		zap.String("risk", string(a.Risk)),
		zap.Float64("pressureChange", a.PressureChange))
	return nil
}

// SNSPublisher is the subset of the SNS client used for publishing.
type SNSPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes alerts as JSON messages to an SNS topic.
type SNSNotifier struct {
	client   SNSPublisher
	topicARN string
}

func NewSNSNotifier(client SNSPublisher, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

// NewSNSNotifierFromEnv builds an SNS client from the default AWS credential
// chain for region.
func NewSNSNotifierFromEnv(ctx context.Context, region, topicARN string) (*SNSNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSNSNotifier(sns.NewFromConfig(cfg), topicARN), nil
}

func (n *SNSNotifier) Name() string { return "sns" }

func (n *SNSNotifier) Notify(ctx context.Context, a Alert) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String(fmt.Sprintf("Pressure alert for %s", a.Date)),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("publish alert for %s: %w", a.ProfileID, err)
	}
	return nil
}
