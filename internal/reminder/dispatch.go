package reminder

import (
	"context"
	"fmt"
	"time"

	"glimmer/internal/model"
	"glimmer/internal/service"
)

// Dispatcher renders reminder mails and converts send outcomes into ledger
// rows. It never fails: a transport error becomes a `failed` entry. Ledger
// timestamps come from the injected clock so they stay consistent with the
// run's notion of "now".
type Dispatcher struct {
	mailer service.Mailer
	now    func() time.Time
}

func NewDispatcher(mailer service.Mailer, now func() time.Time) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{mailer: mailer, now: now}
}

func (d *Dispatcher) DispatchSelf(ctx context.Context, u *model.User, daysSince int) model.NotificationLog {
	text := fmt.Sprintf(`你好，

你已经 %d 天没有签到了。

如果一切正常，可以随时回来签到。

— 微光 Glimmer`, daysSince)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="margin:0; padding:0; background-color:#f7f8fa;">
    <div style="max-width:600px; margin:0 auto; padding:24px; font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif; color:#333; line-height:1.6;">
      <p>你好，</p>

      <p>
        你已经 <strong>%d 天</strong> 没有在微光签到或留下近况了。
      </p>

      <p>
        希望你能一切安好；
      </p>

      <p>
        如果你正经历一些不容易的时刻，希望这封邮件能成为一盏微小但温暖的光。
      </p>

      <p style="margin-top:32px; color:#999;">
        — 微光 Glimmer
      </p>

    </div>
  </body>
</html>`, daysSince)

	result := d.mailer.SendEmail(ctx, service.Email{
		To:      u.Email,
		Subject: "一盏微光提醒",
		Text:    text,
		HTML:    html,
	})
	return d.toLog(u.ID, model.ReminderTypeSelf, u.Email, text, result)
}

func (d *Dispatcher) DispatchContact(ctx context.Context, u *model.User, contact *model.EmergencyContact, daysSince int) model.NotificationLog {
	name := displayName(u)
	text := fmt.Sprintf(`你好，

这是来自 微光（Glimmer） 的一条提醒。

%s 已经有 %d 天 没有在微光签到或留下近况了。

如果一切都还好，可以轻轻提醒他们回来签到一下；
如果他们正经历一些不容易的时刻，希望这封邮件能成为一盏微小但温暖的光。

祝一切安好。
— 微光 Glimmer`, name, daysSince)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
  <body style="margin:0; padding:0; background-color:#f7f8fa;">
    <div style="max-width:600px; margin:0 auto; padding:24px; font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif; color:#333; line-height:1.6;">

      <p>你好，</p>

      <p>
        这是来自 <strong>微光（Glimmer）</strong> 的一条提醒。
      </p>

      <p>
        <strong>%s</strong> 已经有 <strong>%d 天</strong> 没有在微光留下近况了。
      </p>

      <p>
        如果一切都还好，可以轻轻提醒他们回来留下近况；<br />
        如果他们正经历一些不容易的时刻，希望这封邮件能成为一盏微小但温暖的光。
      </p>

      <p>
        祝一切安好。
      </p>

      <p style="margin-top:32px; color:#999;">
        — 微光 Glimmer
      </p>

    </div>
  </body>
</html>`, name, daysSince)

	result := d.mailer.SendEmail(ctx, service.Email{
		To:      contact.Email,
		Subject: fmt.Sprintf("关于 %s 的一盏微光提醒", name),
		Text:    text,
		HTML:    html,
	})
	return d.toLog(u.ID, model.ReminderTypeContact, contact.Email, text, result)
}

func (d *Dispatcher) toLog(userID int64, channel, recipient, content string, result service.SendResult) model.NotificationLog {
	entry := model.NotificationLog{
		UserID:    userID,
		Type:      channel,
		Status:    model.StatusSent,
		Content:   content,
		Recipient: recipient,
		CreatedAt: d.now().UTC(),
	}
	if !result.Success {
		entry.Status = model.StatusFailed
		entry.Error = result.Error
	}
	return entry
}

func displayName(u *model.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return "用户"
}
