package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/bloomery-shop/internal/config"
	"github.com/bloomery-shop/internal/constants"
)

func TestBuildOrderStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		locale              string
		status              string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:   "shipped_zh",
			locale: "zh-CN",
			status: constants.OrderStatusShipped,
			wantSubjectContains: []string{
				"订单 BL20260901120000123456",
				"已发货",
			},
			wantBodyContains: []string{
				"当前状态为：已发货",
				"订单金额：32.99",
			},
		},
		{
			name:   "delivered_en",
			locale: "en",
			status: constants.OrderStatusDelivered,
			wantSubjectContains: []string{
				"Order BL20260901120000123456",
				"delivered",
			},
			wantBodyContains: []string{
				"is now delivered",
				"Order total: 32.99",
			},
		},
		{
			name:   "unknown_status_passthrough",
			locale: "zh-CN",
			status: "refund_review",
			wantSubjectContains: []string{
				"refund_review",
			},
			wantBodyContains: []string{
				"refund_review",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := OrderStatusEmailInput{
				OrderNo: "BL20260901120000123456",
				Status:  tt.status,
				Amount:  mustMoney(t, "32.99"),
			}
			subject, body := buildOrderStatusContent(input, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestSendOrderStatusEmailGuards(t *testing.T) {
	input := OrderStatusEmailInput{OrderNo: "BL20260901120000000001", Status: constants.OrderStatusShipped}

	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.SendOrderStatusEmail("buyer@example.com", input, "en"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}

	unconfigured := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := unconfigured.SendOrderStatusEmail("buyer@example.com", input, "en"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}

	configured := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "no-reply@bloomery.local",
	})
	if err := configured.SendOrderStatusEmail("not-an-address", input, "en"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("no-reply@bloomery.local", ""); got != "no-reply@bloomery.local" {
		t.Fatalf("expected bare address without display name, got %q", got)
	}

	got := buildFromAddress("no-reply@bloomery.local", "Bloomery 花坊")
	if !strings.Contains(got, "<no-reply@bloomery.local>") {
		t.Fatalf("expected angle-addr form, got %q", got)
	}
	if !strings.Contains(got, "=?UTF-8?") {
		t.Fatalf("expected Q-encoded display name, got %q", got)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("no-reply@bloomery.local", "buyer@example.com", "Order update", "hello")
	headerEnd := strings.Index(msg, "\r\n\r\n")
	if headerEnd < 0 {
		t.Fatalf("message missing header/body separator: %q", msg)
	}
	headers := msg[:headerEnd]
	for _, expected := range []string{
		"From: no-reply@bloomery.local",
		"To: buyer@example.com",
		"Content-Type: text/plain; charset=UTF-8",
	} {
		if !strings.Contains(headers, expected) {
			t.Fatalf("headers missing %q: %s", expected, headers)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\nhello") {
		t.Fatalf("unexpected body placement: %q", msg)
	}
}
