// Package content holds the gratitude idea, praise, and science-fact
// libraries spoken by DialogPipe, plus helpers for turning spoken text into
// card-safe text.
package content

import (
	"regexp"
	"strings"
)

// Ideas are the gratitude suggestions offered one per turn. Entries may
// embed pause markup, which the transport renders and cards strip.
var Ideas = []string{
	"Leave a sticky note with one thing you appreciate about your partner somewhere they'll find it today.",
	"Send your partner a message right now naming one small thing they did this week that made your day easier.",
	"Tonight, tell your partner about a moment from early in your relationship that still makes you smile.",
	"Make your partner's favorite drink and bring it to them <break time=\"0.05s\"/> without being asked.",
	"Thank your partner for something they do so routinely that it usually goes unnoticed.",
	"Take over one chore your partner usually handles, and let it be a surprise.",
	"Tell your partner one way they've helped you grow into a better person.",
	"Give your partner a long hug and tell them one reason you're glad they're in your life.",
	"Write down three things you appreciate about your partner and read the list to them this evening.",
	"Compliment your partner on something other than their appearance <break time=\"0.05s\"/> like their patience, or their humor.",
	"Ask your partner about the best part of their day, and really listen to the answer.",
	"Recall a hard time you got through together, and thank your partner for how they showed up for you.",
}

// Praises open the response after the user commits to an idea. Each entry
// ends with a space so survey or fact text can be appended directly.
var Praises = []string{
	"That's wonderful! Small moments like this really add up. ",
	"Great choice! Your partner is lucky to have you. ",
	"Love it! A little gratitude goes a long way. ",
	"Nice! That one is a favorite around here. ",
	"Way to go! Showing appreciation is a habit worth keeping. ",
}

// Fact pairs a short spoken form with a card title and a longer card body.
type Fact struct {
	Speech string // follows "science suggests that" in the utterance
	Title  string // card title
	Long   string // card body
}

// Facts are the supplementary science tidbits used once the satisfaction
// survey has already been answered.
var Facts = []Fact{
	{
		Speech: "couples who express gratitude regularly report feeling more connected to each other.",
		Title:  "Gratitude and Connection",
		Long:   "Studies of romantic partners have found that expressing gratitude predicts increased feelings of connection and relationship satisfaction, for both the person expressing and the person receiving it.",
	},
	{
		Speech: "feeling appreciated by a partner makes people more responsive to that partner's needs.",
		Title:  "Appreciation Is a Two-Way Street",
		Long:   "Research suggests that when people feel appreciated by their partner, they become more attentive and responsive in return, creating a reinforcing cycle of care.",
	},
	{
		Speech: "gratitude acts like a booster shot for romantic relationships.",
		Title:  "A Booster Shot for Love",
		Long:   "Psychologists have described everyday gratitude as a booster shot for romantic relationships: small expressions of thanks measurably strengthen the bond between partners over time.",
	},
	{
		Speech: "keeping a gratitude practice is linked to better sleep and lower stress.",
		Title:  "Gratitude and Wellbeing",
		Long:   "Beyond relationships, regular gratitude practice has been linked to better sleep quality, lower stress, and higher overall life satisfaction.",
	},
	{
		Speech: "noticing small kindnesses rewires attention toward the positive over time.",
		Title:  "Training Your Attention",
		Long:   "Deliberately noticing small kindnesses trains attention toward positive events, which researchers believe underlies many of gratitude's long-term mood benefits.",
	},
}

var breakMarkup = regexp.MustCompile(`<break time="[^"]*"/>`)

// StripMarkup removes pause markup from spoken text so it can be shown on a
// card, collapsing any doubled spaces the removal leaves behind.
func StripMarkup(s string) string {
	out := breakMarkup.ReplaceAllString(s, "")
	out = strings.Join(strings.Fields(out), " ")
	return out
}
