package services

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailerOrderPlaced(t *testing.T) {
	m := NewMailer(MailerConfig{Host: "smtp.example.com", Port: "587", Username: "shop", Password: "secret", From: "shop@example.com"})

	var gotAddr string
	var gotTo []string
	var gotMsg string
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	}

	order := &models.Order{
		OrderCode:    "ORD-20260101-ABCDEF12",
		CustomerName: "<Khách>",
		Phone:        "0901234567",
		Email:        "khach@example.com",
		Address:      "Hà Nội",
		Total:        decimal.NewFromInt(1500000),
		OrderItems: []models.OrderItem{
			{ProductName: "Nhớt", Quantity: 2, Price: decimal.NewFromInt(750000), Subtotal: decimal.NewFromInt(1500000)},
		},
	}
	require.NoError(t, m.OrderPlaced(order))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"khach@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: [Motoshop] Xác nhận đơn hàng ORD-20260101-ABCDEF12")
	assert.Contains(t, gotMsg, "1.500.000 ₫")
	assert.Contains(t, gotMsg, "&lt;Khách&gt;")
	assert.NotContains(t, gotMsg, "%!")
}

func TestMailerSkipsOrdersWithoutEmail(t *testing.T) {
	m := NewMailer(MailerConfig{Host: "smtp.example.com", Port: "25"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.NoError(t, m.OrderPlaced(&models.Order{OrderCode: "ORD-1"}))
}

func TestMailerReturnsSendError(t *testing.T) {
	m := NewMailer(MailerConfig{Host: "smtp.example.com", Port: "25"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	assert.Error(t, m.SendHTMLEmail("a@example.com", "hi", "<p>hi</p>"))
}
