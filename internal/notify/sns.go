package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/donaldgifford/worthyten/internal/metrics"
)

// OrderSubmittedEvent is the event_type attribute on published messages.
const OrderSubmittedEvent = "order.submitted"

// Publisher is the subset of the SNS client the notifier uses.
type Publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier publishes each order as a JSON message to an SNS topic so
// pickup scheduling and accounting can subscribe without polling the API.
type SNSNotifier struct {
	pub      Publisher
	topicARN string
}

// NewSNSNotifier creates an SNSNotifier publishing to topicARN.
func NewSNSNotifier(pub Publisher, topicARN string) *SNSNotifier {
	return &SNSNotifier{pub: pub, topicARN: topicARN}
}

// DialSNS builds an SNS client from the default AWS credential chain.
func DialSNS(ctx context.Context, region, topicARN string) (*SNSNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return NewSNSNotifier(sns.NewFromConfig(cfg), topicARN), nil
}

// Name identifies the backend in logs and metrics.
func (*SNSNotifier) Name() string { return "sns" }

type orderMessage struct {
	OrderID       string   `json:"orderId"`
	SessionID     string   `json:"sessionId"`
	Product       string   `json:"product"`
	Category      string   `json:"category"`
	FinalPrice    int64    `json:"finalPrice"`
	OriginalQuote int64    `json:"originalQuote"`
	DeviceAge     string   `json:"deviceAge,omitempty"`
	Issues        []string `json:"issues"`
	Accessories   []string `json:"accessories"`
	Lenses        []string `json:"lenses,omitempty"`
}

// SendOrder publishes the order. The category is also set as a message
// attribute so subscribers can filter without parsing the body.
func (s *SNSNotifier) SendOrder(ctx context.Context, o *OrderPayload) error {
	msg := orderMessage{
		OrderID:       o.OrderID,
		SessionID:     o.SessionID,
		Product:       o.Product,
		Category:      string(o.Category),
		FinalPrice:    o.FinalPrice,
		OriginalQuote: o.OriginalQuote,
		DeviceAge:     o.DeviceAge,
		Issues:        nonNil(o.Issues),
		Accessories:   nonNil(o.Accessories),
		Lenses:        o.Lenses,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling sns message: %w", err)
	}

	start := time.Now()
	_, err = s.pub.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String("New trade-in: " + o.Product),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"event_type": stringAttr(OrderSubmittedEvent),
			"category":   stringAttr(string(o.Category)),
		},
	})
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("publishing order %s to sns: %w", o.OrderID, err)
	}
	return nil
}

func stringAttr(v string) snstypes.MessageAttributeValue {
	return snstypes.MessageAttributeValue{
		DataType:    aws.String("String"),
		StringValue: aws.String(v),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
