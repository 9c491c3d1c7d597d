package domain

import "testing"

func testClassifier() *Classifier {
	return &Classifier{
		SuppressSelfChat:  true,
		SystemAccountName: "微信团队",
		NoticePatterns: []string{
			"收到一条视频/语音聊天消息，请在手机上查看",
			"收到红包，请在手机上查看",
		},
	}
}

func TestClassifier_PlainTextPasses(t *testing.T) {
	c := testClassifier()
	msg := &IncomingMessage{Content: "hello", MsgType: MsgTypeText, SenderName: "Alice"}

	if c.IsNonsense(msg) {
		t.Error("Expected plain text message to pass")
	}
}

func TestClassifier_SelfEcho(t *testing.T) {
	c := testClassifier()
	msg := &IncomingMessage{Content: "hello", MsgType: MsgTypeText, IsSelf: true}

	if !c.IsNonsense(msg) {
		t.Error("Expected self echo to be dropped when suppression is on")
	}

	c.SuppressSelfChat = false
	if c.IsNonsense(msg) {
		t.Error("Expected self echo to pass when suppression is off")
	}
}

func TestClassifier_NonText(t *testing.T) {
	c := testClassifier()

	for _, mt := range []MsgType{MsgTypeImage, MsgTypeAudio, MsgTypePost, MsgTypeOther} {
		msg := &IncomingMessage{Content: "x", MsgType: mt}
		if !c.IsNonsense(msg) {
			t.Errorf("Expected %s message to be dropped", mt)
		}
	}
}

func TestClassifier_SystemAccount(t *testing.T) {
	c := testClassifier()
	msg := &IncomingMessage{Content: "notice", MsgType: MsgTypeText, SenderName: "微信团队"}

	if !c.IsNonsense(msg) {
		t.Error("Expected system account message to be dropped")
	}
}

func TestClassifier_NoticePatterns(t *testing.T) {
	c := testClassifier()
	msg := &IncomingMessage{
		Content: "你收到红包，请在手机上查看哦",
		MsgType: MsgTypeText,
	}

	if !c.IsNonsense(msg) {
		t.Error("Expected notice substring to be dropped")
	}
}
