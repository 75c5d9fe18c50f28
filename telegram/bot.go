package telegram

import (
	"fmt"
	"log"
	"roamsync/internal"
	"roamsync/models"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// AlertBot delivers roaming sync alerts (subscription cancellations,
// projection warning bursts) to subscribed operators.
type AlertBot struct {
	api         *tgbotapi.BotAPI
	database    internal.Database
	subscribers map[int]models.AlertSubscriber
	event       chan MessageContent
	send        chan MessageContent
}

type MessageContent struct {
	ChatID int64
	Text   string
}

func NewBot(apiKey string) (*AlertBot, error) {
	bot := &AlertBot{
		subscribers: make(map[int]models.AlertSubscriber),
		event:       make(chan MessageContent, 100),
		send:        make(chan MessageContent, 100),
	}
	api, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		return nil, err
	}
	bot.api = api
	return bot, nil
}

// SetDatabase attach database service
func (b *AlertBot) SetDatabase(database internal.Database) {
	b.database = database
}

func (b *AlertBot) Start() {
	b.subscribers = make(map[int]models.AlertSubscriber)
	if b.database != nil {
		subscribers, err := b.database.GetAlertSubscribers()
		if err != nil {
			log.Printf("bot: error getting subscribers: %v", err)
		} else {
			for _, subscriber := range subscribers {
				b.subscribers[subscriber.UserID] = subscriber
			}
		}
	}
	go b.sendPump()
	go b.eventPump()
	go b.updatesPump()
}

// OnCancellation alerts all subscribers that a subscription ended.
func (b *AlertBot) OnCancellation(subscriptionId, reason string) {
	msg := fmt.Sprintf("Subscription *%v* cancelled\nReason: `%v`\n", sanitize(subscriptionId), sanitize(reason))
	b.event <- MessageContent{Text: msg}
}

// OnProjectionWarnings alerts subscribers about data problems found
// while projecting an entity.
func (b *AlertBot) OnProjectionWarnings(entityId string, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	msg := fmt.Sprintf("Projection of *%v* produced %v warnings:\n", sanitize(entityId), len(warnings))
	for _, warning := range warnings {
		msg += fmt.Sprintf("`%v`\n", sanitize(warning))
	}
	b.event <- MessageContent{Text: msg}
}

func (b *AlertBot) updatesPump() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		log.Printf("bot: error getting updates: %v", err)
		return
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}
		if !update.Message.IsCommand() {
			continue
		}
		switch update.Message.Command() {
		case "start":
			subscriber := models.AlertSubscriber{
				UserID:   update.Message.From.ID,
				ChatID:   update.Message.Chat.ID,
				Username: update.Message.From.UserName,
			}
			b.subscribers[update.Message.From.ID] = subscriber
			msg := fmt.Sprintf("Hello *%v*, you are now subscribed to roaming sync alerts", update.Message.From.UserName)
			if b.database != nil {
				if err := b.database.AddAlertSubscriber(&subscriber); err != nil {
					log.Printf("bot: error adding subscriber: %v", err)
					msg = fmt.Sprintf("Error adding subscriber:\n `%v`", err)
				}
			}
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: msg}
		case "stop":
			delete(b.subscribers, update.Message.From.ID)
			if b.database != nil {
				if err := b.database.DeleteAlertSubscriber(update.Message.From.ID); err != nil {
					log.Printf("bot: error deleting subscriber: %v", err)
				}
			}
			b.send <- MessageContent{ChatID: update.Message.Chat.ID, Text: "Your alert subscription has been removed"}
		}
	}
}

// eventPump sending events to all subscribers
func (b *AlertBot) eventPump() {
	for {
		if event, ok := <-b.event; ok {
			for _, subscriber := range b.subscribers {
				b.sendMessage(subscriber.ChatID, event.Text)
			}
		}
	}
}

// sendPump sending messages to users
func (b *AlertBot) sendPump() {
	for {
		if event, ok := <-b.send; ok {
			b.sendMessage(event.ChatID, event.Text)
		}
	}
}

// sendMessage common routine to send a message via bot API
func (b *AlertBot) sendMessage(id int64, text string) {
	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = "MarkdownV2"
	_, err := b.api.Send(msg)
	if err != nil {
		// maybe error was while parsing, so we can send a message about this error
		msg = tgbotapi.NewMessage(id, fmt.Sprintf("Error: %v", err))
		_, err = b.api.Send(msg)
		if err != nil {
			log.Printf("bot: error sending message: %v", err)
		}
	}
}

func sanitize(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"`", "\\`",
		"[", "\\[",
	)
	return replacer.Replace(text)
}
