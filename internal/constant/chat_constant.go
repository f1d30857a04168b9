package constant

// Websocket channel names. Session channels are suffixed with the session id.
const (
	ChannelSessionPrefix = "session:"
	ChannelAgentsPool    = "agents:pool"
)

// Redis pubsub channel used to bridge fan-out across instances.
const RedisChatEventsChannel = "chat_events"

// Bot intents recognized by the keyword matcher.
const (
	IntentJobSearch   = "job_search"
	IntentPartnership = "partnership"
	IntentHumanAgent  = "human_agent"
)

// KeywordVocabulary maps an intent to the phrases that trigger it. Matching
// is case-insensitive substring search over the visitor's message.
var KeywordVocabulary = map[string][]string{
	IntentJobSearch: {
		"job", "vacancy", "vacancies", "position", "opening",
		"career", "apply", "application", "hiring", "recruit",
	},
	IntentPartnership: {
		"partner", "partnership", "collaborate", "collaboration",
		"business proposal", "cooperation", "vendor",
	},
	IntentHumanAgent: {
		"human", "agent", "real person", "live chat", "representative",
		"speak to someone", "talk to someone", "operator",
	},
}

// Canned bot responses keyed by intent.
var BotResponses = map[string]string{
	IntentJobSearch:   "We would love to help with your job search! You can browse all open positions on our careers page, or tell me what kind of role you are looking for.",
	IntentPartnership: "Thanks for your interest in partnering with us. Please share a few details about your organization and what you have in mind, and our partnerships team will follow up.",
	IntentHumanAgent:  "Let me connect you with a member of our team.",
}

// DefaultBotResponse is used when no template and no keyword matches.
const DefaultBotResponse = "Thanks for your message! I'm not sure I understood that. You can ask me about job openings, partnerships, or type \"agent\" to talk to a person."

// DefaultWelcomeMessage greets a visitor when a session opens and no
// welcome template is configured.
const DefaultWelcomeMessage = "Hi {{name}}! Welcome to our support chat. How can we help you today?"

// DefaultQuickReplies are offered alongside the welcome message.
var DefaultQuickReplies = []string{
	"I'm looking for a job",
	"Partnership inquiry",
	"Talk to a human",
}

// OptionIntents maps a quick-reply option, clicked verbatim, to its intent.
var OptionIntents = map[string]string{
	"I'm looking for a job": IntentJobSearch,
	"Partnership inquiry":   IntentPartnership,
	"Talk to a human":       IntentHumanAgent,
}

// FormReceivedMessage acknowledges a submitted form payload.
const FormReceivedMessage = "Thanks! We received your details and will use them to assist you better."

// WaitingForAgentMessage is sent while the visitor waits for a free agent.
const WaitingForAgentMessage = "All of our agents are currently busy. You are in the queue and someone will be with you shortly."
