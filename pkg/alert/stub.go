package alert

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/redink-lab/redink/dao/model"
)

// stubAlerter is used when neither SMTP nor a webhook is configured.
// Messages only reach the log.
type stubAlerter struct{}

func newStubAlerter() alertHandlerInterface {
	return &stubAlerter{}
}

func (s *stubAlerter) SendMessageTo(_ context.Context, receiver *model.User, subject, _ string) error {
	klog.V(2).Infof("alert (not delivered, no channel configured) to %s: %s", receiver.Name, subject)
	return nil
}
