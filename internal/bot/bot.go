package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"logitrack/internal/client"
	"logitrack/internal/model"
	"logitrack/internal/worker"
)

const requestTimeout = 15 * time.Second

// Bot is the Telegram front-end over the persistence gateway. Every sender
// gets a gateway bound to their own identity; all gateways share one prober,
// so the remote/local decision is process-wide.
type Bot struct {
	tb     *tele.Bot
	api    *client.Client
	local  *client.LocalDB
	prober *client.Prober
	worker *worker.StatusWorker
}

func New(tb *tele.Bot, api *client.Client, local *client.LocalDB, prober *client.Prober) *Bot {
	b := &Bot{tb: tb, api: api, local: local, prober: prober}

	tb.Handle("/start", b.handleStart)
	tb.Handle("/orders", b.handleOrders)
	tb.Handle("/recipients", b.handleRecipients)
	tb.Handle("/addresses", b.handleAddresses)
	tb.Handle("/consolidations", b.handleConsolidations)
	tb.Handle("/neworder", b.handleNewOrder)

	return b
}

// SetWorker attaches the status notifier. The worker needs the bot as its
// Notifier, so it is wired after construction.
func (b *Bot) SetWorker(w *worker.StatusWorker) {
	b.worker = w
}

// Notify implements worker.Notifier.
func (b *Bot) Notify(chatID int64, text string) error {
	_, err := b.tb.Send(tele.ChatID(chatID), text)
	return err
}

func (b *Bot) gatewayFor(sender *tele.User) *client.Gateway {
	identity := client.Identity{
		TelegramID: strconv.FormatInt(sender.ID, 10),
		Username:   sender.Username,
		FirstName:  sender.FirstName,
		LastName:   sender.LastName,
	}
	return client.NewGateway(b.api.WithIdentity(identity), b.local, b.prober)
}

func (b *Bot) handleStart(c tele.Context) error {
	g := b.gatewayFor(c.Sender())
	if b.worker != nil {
		b.worker.Watch(c.Chat().ID, g.Orders)
	}

	return c.Send("Привет! Я помогу отслеживать ваши заказы и посылки.\n\n" +
		"/orders — список заказов\n" +
		"/neworder название;цена;количество — новый заказ\n" +
		"/recipients — получатели\n" +
		"/addresses — адреса доставки\n" +
		"/consolidations — объединения")
}

func (b *Bot) handleOrders(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	orders, err := b.gatewayFor(c.Sender()).Orders.GetAll(ctx)
	if err != nil {
		return c.Send("Не удалось получить заказы, попробуйте позже.")
	}
	if len(orders) == 0 {
		return c.Send("У вас пока нет заказов.")
	}

	var sb strings.Builder
	sb.WriteString("Ваши заказы:\n")
	for _, o := range orders {
		fmt.Fprintf(&sb, "• %s — %.2f ¥ ×%d, %s (%s)\n",
			o.ProductName, o.Price, o.Quantity, o.Status, o.TrackNumber)
	}
	return c.Send(sb.String())
}

func (b *Bot) handleRecipients(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	recipients, err := b.gatewayFor(c.Sender()).Recipients.GetAll(ctx)
	if err != nil {
		return c.Send("Не удалось получить получателей, попробуйте позже.")
	}
	if len(recipients) == 0 {
		return c.Send("У вас пока нет получателей.")
	}

	var sb strings.Builder
	sb.WriteString("Ваши получатели:\n")
	for _, r := range recipients {
		fmt.Fprintf(&sb, "• %s", r.Name)
		if r.Phone != "" {
			fmt.Fprintf(&sb, " (%s)", r.Phone)
		}
		sb.WriteString("\n")
	}
	return c.Send(sb.String())
}

func (b *Bot) handleAddresses(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	addresses, err := b.gatewayFor(c.Sender()).Addresses.GetAll(ctx)
	if err != nil {
		return c.Send("Не удалось получить адреса, попробуйте позже.")
	}
	if len(addresses) == 0 {
		return c.Send("У вас пока нет адресов доставки.")
	}

	var sb strings.Builder
	sb.WriteString("Ваши адреса доставки:\n")
	for _, a := range addresses {
		fmt.Fprintf(&sb, "• %s: %s, %s\n", a.Name, a.Company, a.Address)
	}
	return c.Send(sb.String())
}

func (b *Bot) handleConsolidations(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	consolidations, err := b.gatewayFor(c.Sender()).Consolidations.GetAll(ctx)
	if err != nil {
		return c.Send("Не удалось получить объединения, попробуйте позже.")
	}
	if len(consolidations) == 0 {
		return c.Send("У вас пока нет объединений.")
	}

	var sb strings.Builder
	sb.WriteString("Ваши объединения:\n")
	for _, cons := range consolidations {
		fmt.Fprintf(&sb, "• %s — %s (заказов: %d)\n", cons.Name, cons.Status, len(cons.OrderIDs))
	}
	return c.Send(sb.String())
}

// handleNewOrder parses "название;цена;количество" from the command payload
// and records the order through the gateway.
func (b *Bot) handleNewOrder(c tele.Context) error {
	order, err := ParseNewOrder(c.Message().Payload)
	if err != nil {
		return c.Send("Формат: /neworder название;цена;количество")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	created, err := b.gatewayFor(c.Sender()).Orders.Create(ctx, order)
	if err != nil {
		return c.Send("Не удалось создать заказ, попробуйте позже.")
	}

	return c.Send(fmt.Sprintf("Заказ «%s» создан.\nТрек-номер: %s\nСтатус: %s",
		created.ProductName, created.TrackNumber, created.Status))
}

// ParseNewOrder turns "name;price;quantity" into an order. Quantity is
// optional and defaults to 1.
func ParseNewOrder(payload string) (*model.Order, error) {
	parts := strings.Split(payload, ";")
	if len(parts) < 2 {
		return nil, fmt.Errorf("expected name;price[;quantity], got %q", payload)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("empty product name")
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(parts[1], ",", ".")), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("invalid price %q", parts[1])
	}

	quantity := 1
	if len(parts) >= 3 {
		quantity, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %q", parts[2])
		}
	}

	return &model.Order{
		ProductName:   name,
		Price:         price,
		Quantity:      quantity,
		Consolidation: true,
	}, nil
}
