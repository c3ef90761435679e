package alert

import (
	"context"
	"fmt"
	"time"

	imrocreq "github.com/imroc/req/v3"
	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
	"github.com/redink-lab/redink/pkg/config"
)

// Message 是发送到 Webhook 的消息结构体
type Message struct {
	Msgtype string `json:"msgtype"`
	Text    struct {
		Content string `json:"content"`
	} `json:"text"`
}

type webhookAlerter struct {
	req    *imrocreq.Client
	url    string
	secret string
}

func newWebhookAlerter() alertHandlerInterface {
	webhookConfig := config.GetConfig().Webhook
	return &webhookAlerter{
		req:    imrocreq.C().SetTimeout(5 * time.Second),
		url:    webhookConfig.URL,
		secret: webhookConfig.Secret,
	}
}

// SendMessageTo 发送文本消息到群聊 Webhook
func (w *webhookAlerter) SendMessageTo(ctx context.Context, _ *model.User, subject, body string) error {
	msg := Message{Msgtype: "text"}
	msg.Text.Content = subject + "\n" + body

	response, err := w.req.R().
		SetContext(ctx).
		SetHeader("X-Redink-Token", w.secret).
		SetBodyJsonMarshal(&msg).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	if !response.IsSuccessState() {
		return fmt.Errorf("webhook responded with status %s", response.Status)
	}

	klog.V(4).Infof("Sent webhook alert: %s", subject)
	return nil
}
