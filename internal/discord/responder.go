package discord

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// interactionResponder answers an interaction ephemerally. The first reply
// is the interaction response; later replies are follow-up messages.
type interactionResponder struct {
	session     Session
	interaction *discordgo.Interaction

	mu        sync.Mutex
	responded bool
}

func newInteractionResponder(session Session, i *discordgo.Interaction) *interactionResponder {
	return &interactionResponder{session: session, interaction: i}
}

// Reply implements linker.Responder.
func (r *interactionResponder) Reply(_ context.Context, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.responded {
		err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if err != nil {
			return err
		}
		r.responded = true
		return nil
	}

	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}
