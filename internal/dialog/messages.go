package dialog

// AppName is the agent's spoken name.
const AppName = "Mindful Couple"

// Reusable utterances. The `<break .../>` markup is pause timing for the
// speech renderer and is opaque to this core; card text strips it.
const (
	msgNotifyMissingEmail = "Would it be okay if my developer followed up with 2 questions over email? If so, please update permissions in your companion app. Then, open " + AppName + " again."
	msgSurvey             = "Before we stop, were you happy with this skill today?"
	msgError              = "Uh oh. Something went wrong. You can restart this skill by saying <break time=\"0.05s\"/> open " + AppName + "."
	msgWrongInvocation    = "Hmm. I wasn't expecting you to say that just then. <break time=\"0.05s\"/> To hear what you can do with this skill, say <break time=\"0.05s\"/> help. Or, if you're done, you can just say <break time=\"0.05s\"/> stop."
	msgFirstWelcome       = "In the craziness of life, this skill helps you make time to show your partner how much you appreciate them. <break time=\"0.05s\"/> To get a quick gratitude idea, say <break time=\"0.05s\"/> give me an idea."
	msgRepeatWelcome      = "Welcome back to " + AppName + "! <break time=\"0.05s\"/> To hear today's gratitude idea, say <break time=\"0.05s\"/> give me an idea."
	msgRepeatWelcomeReminder = "Welcome back to " + AppName + "! <break time=\"0.05s\"/> To get a gratitude idea, say <break time=\"0.05s\"/> give me an idea. <break time=\"0.05s\"/> Or, to set a weekly gratitude reminder, you can say <break time=\"0.05s\"/> set a reminder."

	msgLaunchReprompt         = "To hear today's gratitude idea, you can say <break time=\"0.05s\"/> give me an idea."
	msgLaunchRepromptReminder = "Would you like to get a gratitude idea <break time=\"0.05s\"/> or set a weekly gratitude reminder?"
	msgIdeaReprompt           = "You can say, <break time=\"0.05s\"/>I'll do it! or <break time=\"0.05s\"/>give me another idea."
	msgNextIdeaClarification  = "Were you trying to hear a new gratitude idea? You can say <break time=\"0.05s\"/>give me an idea."
	msgErrorReprompt          = "Sorry, I couldn't understand your command. You can ask for an idea, or say stop if you're done."

	msgHelp         = "This skill can help with two things: <break time=\"0.05s\"/> Get fresh ideas to show your partner gratitude, <break time=\"0.05s\"/> or set a weekly gratitude reminder. <break time=\"0.05s\"/> If you're done, you can also just say <break time=\"0.05s\"/> stop. What would you like to do?"
	msgHelpReprompt = "You can say <break time=\"0.05s\"/> give me an idea or <break time=\"0.02s\"/> set a reminder."
	msgGoodbye      = "Okay. You can reopen this skill by saying <break time=\"0.03s\"/> open " + AppName + ". <break time=\"0.03s\"/> Good bye!"

	msgFeedbackYesOpening = "I'm so glad to hear it! "
	msgFeedbackNoOpening  = "I'm sorry to hear that. "
	msgFeedbackThanks     = "Thanks for your feedback."

	msgReminderConsent = "Please check your companion app to grant " + AppName + " permission to set reminders."
	msgReminderFailure = "There was a problem setting your reminder. Please give us another try later."
)

// Reminder subscriptions fire weekly at 7 AM local time.
const reminderTimeOfDay = "07:00"

// msgReminderBody is the reminder text spoken when a subscription fires.
const msgReminderBody = "Time for a little gratitude. Open " + AppName + " for today's idea."
