package discord

import (
	"context"
	"fmt"
	"log/slog"
	"persona-relay/domain"
	"persona-relay/services"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	CommandRelay   = "rp"
	CommandDefault = "rp_default"
	CommandHelp    = "rp_help"
	CommandStatus  = "rp_status"

	optionSelector = "trigger"
	optionMessage  = "message"
	optionChannel  = "channel"

	// Autocomplete limits of the platform.
	maxChoices    = 25
	maxChoiceName = 100

	colorSuccess = 0x2ecc71
	colorWarning = 0xf1c40f
	colorFailure = 0xe74c3c
)

// Commands declares the slash commands of the bot.
func Commands() []*discordgo.ApplicationCommand {
	selector := func(required bool, description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         optionSelector,
			Description:  description,
			Required:     required,
			Autocomplete: true,
		}
	}
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandRelay,
			Description: "Send a message as a configured persona",
			Options: []*discordgo.ApplicationCommandOption{
				selector(true, "Selector of the persona"),
				{Type: discordgo.ApplicationCommandOptionString, Name: optionMessage, Description: "Message to send", Required: true},
			},
		},
		{
			Name:        CommandDefault,
			Description: "Set or unset a default persona for your messages",
			Options:     []*discordgo.ApplicationCommandOption{selector(false, "Selector to use by default. Leave empty to unset.")},
		},
		{
			Name:        CommandHelp,
			Description: "Show the personas you can use",
		},
		{
			Name:        CommandStatus,
			Description: "Check whether relaying is enabled in a channel",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         optionChannel,
				Description:  "Channel to check (defaults to the current channel)",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			}},
		},
	}
}

// CommandHandler answers slash commands with ephemeral replies.
type CommandHandler struct {
	dispatcher  services.IDispatchService
	preferences services.IPreferenceService
	log         *slog.Logger
	timeout     time.Duration
}

func NewCommandHandler(dispatcher services.IDispatchService, preferences services.IPreferenceService,
	log *slog.Logger, timeout time.Duration) *CommandHandler {
	if timeout <= 0 {
		timeout = DefaultEventTimeout
	}
	return &CommandHandler{dispatcher: dispatcher, preferences: preferences, log: log, timeout: timeout}
}

func (h *CommandHandler) OnInteractionCreate(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	i := ic.Interaction

	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		err := s.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionApplicationCommandAutocompleteResult,
			Data: &discordgo.InteractionResponseData{Choices: h.Autocomplete(ctx, i)},
		}, discordgo.WithContext(ctx))
		if err != nil {
			h.log.Debug("Autocomplete response failed", "error", err)
		}
	case discordgo.InteractionApplicationCommand:
		// Relaying may outlast the interaction deadline, so the reply is deferred.
		err := s.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
		}, discordgo.WithContext(ctx))
		if err != nil {
			h.log.Warn("Deferring interaction failed", "command", i.ApplicationCommandData().Name, "error", err)
			return
		}
		reply := h.Execute(ctx, i)
		if _, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
			Content: &reply.Content,
			Embeds:  &reply.Embeds,
		}, discordgo.WithContext(ctx)); err != nil {
			h.log.Warn("Editing interaction reply failed", "command", i.ApplicationCommandData().Name, "error", err)
		}
	}
}

// Execute runs a slash command and returns its reply.
func (h *CommandHandler) Execute(ctx context.Context, i *discordgo.Interaction) *discordgo.InteractionResponseData {
	data := i.ApplicationCommandData()
	userID := interactionUser(i)
	h.log.Debug("Command invoked", "command", data.Name, "author", userID, "channel", i.ChannelID)

	switch data.Name {
	case CommandRelay:
		res := h.dispatcher.Dispatch(ctx, domain.DispatchRequest{
			ID:         uuid.New(),
			Selector:   optionString(data.Options, optionSelector),
			RawContent: optionString(data.Options, optionMessage),
			AuthorID:   userID,
			ChannelID:  i.ChannelID,
		})
		return &discordgo.InteractionResponseData{Content: RenderResult(res, i.ChannelID)}
	case CommandDefault:
		return h.setDefault(ctx, userID, optionString(data.Options, optionSelector))
	case CommandHelp:
		if !h.dispatcher.ChannelEnabled(i.ChannelID) {
			return &discordgo.InteractionResponseData{Content: disabledNotice(i.ChannelID)}
		}
		return &discordgo.InteractionResponseData{Content: RenderHelp(h.dispatcher.ListAvailablePersonas(userID))}
	case CommandStatus:
		channelID := lo.CoalesceOrEmpty(optionString(data.Options, optionChannel), i.ChannelID)
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{RenderStatus(channelID, h.dispatcher.ChannelEnabled(channelID))},
		}
	default:
		return &discordgo.InteractionResponseData{Content: "Unknown command."}
	}
}

// Autocomplete suggests the canonical selector of each persona the user may use.
func (h *CommandHandler) Autocomplete(ctx context.Context, i *discordgo.Interaction) []*discordgo.ApplicationCommandOptionChoice {
	userID := interactionUser(i)
	current := ""
	for _, o := range i.ApplicationCommandData().Options {
		if o.Focused {
			current, _ = o.Value.(string)
		}
	}
	def, err := h.preferences.Default(ctx, userID)
	if err != nil {
		h.log.Debug("Default selector lookup failed", "author", userID, "error", err)
	}
	return AutocompleteChoices(h.dispatcher.ListAvailablePersonas(userID), current, def)
}

func (h *CommandHandler) setDefault(ctx context.Context, userID, selector string) *discordgo.InteractionResponseData {
	if strings.TrimSpace(selector) == "" {
		if err := h.preferences.UnsetDefault(ctx, userID); err != nil {
			h.log.Warn("Unsetting default failed", "author", userID, "error", err)
			return &discordgo.InteractionResponseData{Content: "Your default persona could not be unset, try again later."}
		}
		return embedReply(&discordgo.MessageEmbed{
			Title:       "✅ Default persona unset",
			Description: "Your default persona has been unset.",
			Color:       colorSuccess,
		})
	}

	selector = strings.TrimSpace(selector)
	p, found, err := h.preferences.SetDefault(ctx, userID, selector)
	if err != nil {
		h.log.Warn("Setting default failed", "author", userID, "error", err)
		return &discordgo.InteractionResponseData{Content: "Your default persona could not be saved, try again later."}
	}
	if !found {
		return embedReply(&discordgo.MessageEmbed{
			Title: "⚠️ Default persona warning",
			Description: fmt.Sprintf("The selector `%s` does not match any persona available to you. "+
				"You may not be able to use it until a matching persona is added.", selector),
			Color: colorWarning,
		})
	}
	return embedReply(&discordgo.MessageEmbed{
		Title: "✅ Default persona set",
		Description: fmt.Sprintf("Your default persona is now **%s** (`%s`).\n\n"+
			"You can now write in chat without a selector, and still name another one when needed.", p.Name, selector),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: p.DisplayThumbnail()},
		Color:     colorSuccess,
	})
}

// RenderResult turns a dispatch outcome into a short user facing sentence.
func RenderResult(res domain.DispatchResult, channelID string) string {
	switch res.Outcome {
	case domain.Completed:
		if res.Scene {
			return "Scene posted."
		}
		if res.Persona != nil {
			return fmt.Sprintf("Sent as **%s**.", res.Persona.Name)
		}
		return "Sent."
	case domain.Rejected:
		switch res.Reason {
		case domain.ReasonMissingSelector:
			return "Start your message with a persona selector, like `nova: hello`, or set a default with `/rp_default`."
		case domain.ReasonEmptyMessage:
			return "Your message is empty."
		case domain.ReasonPersonaNotFound:
			return "No persona available to you matches this selector."
		case domain.ReasonChannelDisabled:
			return disabledNotice(channelID)
		case domain.ReasonRateLimited:
			return "You are sending messages too fast, slow down a little."
		}
		return "Your message was rejected."
	case domain.Failed:
		if res.Partial() {
			return fmt.Sprintf("Only %d of %d parts of your message were delivered.", len(res.Delivered), res.Chunks)
		}
		return "Your message could not be delivered, try again later."
	}
	return ""
}

// RenderHelp lists personas as "- **Name**: `sel`, `alias`".
func RenderHelp(listings []domain.PersonaListing) string {
	if len(listings) == 0 {
		return "No persona is available to you."
	}
	lines := lo.Map(listings, func(l domain.PersonaListing, _ int) string {
		return fmt.Sprintf("- **%s**: %s", l.Name, strings.Join(lo.Map(l.Selectors, func(s string, _ int) string {
			return "`" + s + "`"
		}), ", "))
	})
	return "Available personas and selectors:\n" + strings.Join(lines, "\n")
}

func RenderStatus(channelID string, enabled bool) *discordgo.MessageEmbed {
	status, color := "❌ **Disabled**", colorFailure
	if enabled {
		status, color = "✅ **Enabled**", colorSuccess
	}
	return &discordgo.MessageEmbed{
		Title:       "Relay status",
		Description: fmt.Sprintf("Channel: <#%s>\nChannel ID: `%s`\nStatus: %s", channelID, channelID, status),
		Color:       color,
	}
}

// AutocompleteChoices filters personas on their canonical selector and flags
// the one matching the current default.
func AutocompleteChoices(listings []domain.PersonaListing, current string, def *string) []*discordgo.ApplicationCommandOptionChoice {
	current = strings.ToLower(strings.TrimSpace(current))
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, l := range listings {
		if len(l.Selectors) == 0 || !strings.Contains(strings.ToLower(l.Selectors[0]), current) {
			continue
		}
		name := fmt.Sprintf("%s (%s)", l.Name, strings.Join(l.Selectors, ", "))
		if def != nil && lo.ContainsBy(l.Selectors, func(s string) bool { return strings.EqualFold(s, *def) }) {
			name += " [CURRENT DEFAULT]"
		}
		if r := []rune(name); len(r) > maxChoiceName {
			name = string(r[:maxChoiceName])
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: l.Selectors[0]})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}

func disabledNotice(channelID string) string {
	return fmt.Sprintf("Relaying is not enabled in this channel (%s).", channelID)
}

func embedReply(embed *discordgo.MessageEmbed) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
}

func interactionUser(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range options {
		if o.Name == name {
			v, _ := o.Value.(string)
			return v
		}
	}
	return ""
}
