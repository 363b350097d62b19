package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// unknownWebhook: todavía no hay respuesta a la interacción.
const unknownWebhook = 10015

func flags(public bool) discordgo.MessageFlags {
	if public {
		return 0
	}
	return discordgo.MessageFlagsEphemeral
}

// Defer avisa a Discord que la respuesta llega después (>3s).
func Defer(s *discordgo.Session, ic *discordgo.InteractionCreate, public bool) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags(public)},
	})
	if err != nil {
		log.Warn().Err(err).Msg("defer interaction")
	}
	return err
}

// DeferUpdate es el defer de un botón: después se edita el mensaje original.
func DeferUpdate(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Warn().Err(err).Msg("defer update")
	}
	return err
}

// Followup responde a una interacción ya diferida.
func Followup(s *discordgo.Session, ic *discordgo.InteractionCreate, public bool, rep Reply) {
	content := truncate(rep.Content, maxContent)
	_, err := s.FollowupMessageCreate(ic.Interaction, true, &discordgo.WebhookParams{
		Content:    content,
		Components: rep.Components,
		Flags:      flags(public),
	})
	if err == nil {
		return
	}
	// Fallback sólo si el defer no llegó.
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Message != nil && rest.Message.Code == unknownWebhook {
		_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content:    content,
				Components: rep.Components,
				Flags:      flags(public),
			},
		})
		return
	}
	log.Warn().Err(err).Msg("followup")
}

// Publish manda rep al canal y borra el "pensando…" efímero del defer.
func Publish(s *discordgo.Session, ic *discordgo.InteractionCreate, rep Reply) {
	_, err := s.ChannelMessageSendComplex(ic.ChannelID, &discordgo.MessageSend{
		Content:    truncate(rep.Content, maxContent),
		Components: rep.Components,
	})
	if err != nil {
		log.Warn().Err(err).Str("channel", ic.ChannelID).Msg("publish")
		Followup(s, ic, false, rep)
		return
	}
	if err := s.InteractionResponseDelete(ic.Interaction); err != nil {
		log.Warn().Err(err).Msg("delete deferred response")
	}
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string) {
	Followup(s, ic, false, Reply{Content: content})
}

// EditOriginal reemplaza el mensaje que originó la interacción.
func EditOriginal(s *discordgo.Session, ic *discordgo.InteractionCreate, rep Reply) {
	content := truncate(rep.Content, maxContent)
	_, err := s.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &rep.Components,
	})
	if err != nil {
		log.Warn().Err(err).Msg("edit original")
	}
}
