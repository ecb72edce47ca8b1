package commands

//go:generate mockgen -destination=mock/mock_sender.go -package=commandsmock github.com/mhtoin/initbot/internal/bot/commands Sender

import (
	"github.com/bwmarrin/discordgo"
)

// Sender posts to and deletes from a text channel. Send methods return the
// id of the created message.
type Sender interface {
	Send(channelID, content string) (string, error)
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error)
	Delete(channelID, messageID string) error
}

// SessionSender sends through a live discordgo session.
type SessionSender struct {
	Session *discordgo.Session
}

var _ Sender = (*SessionSender)(nil)

func (s *SessionSender) Send(channelID, content string) (string, error) {
	m, err := s.Session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *SessionSender) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	m, err := s.Session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *SessionSender) Delete(channelID, messageID string) error {
	return s.Session.ChannelMessageDelete(channelID, messageID)
}
