package dialogue

import (
	"fmt"
	"strings"

	"github.com/trangdata/ChatGSE/internal/backend"
)

// Speakers attributed in the transcript.
const (
	SpeakerAssistant  = "Assistant"
	SpeakerModel      = "ChatGSE"
	SpeakerCorrecting = "Correcting agent"
	// SpeakerToolOutput labels rendered tool tables in the persistence sink.
	SpeakerToolOutput = "tool"
)

const welcomeText = "Welcome to ``ChatGSE``!"

const pleaseEnterQuestions = "The model will be with you shortly. " +
	"Please enter your questions below. " +
	"These can be general, such as 'explain these results', or specific. " +
	"General questions will yield more general answers, while specific " +
	"questions go into more detail. You can follow up on the answers with " +
	"more questions."

const envKeyInvalidText = "The API key in your environment is not valid. " +
	"Please enter a valid key."

const typedKeyInvalidText = "The API key you entered is not valid. " +
	"Please try again."

const noFilesDetectedText = "No files detected. Please upload your files, " +
	"or enter 'no' to continue without providing any files."

const dataPromptDeclineText = "If you don't want to provide any files, " +
	"please enter 'no'. You will still be able to provide free text " +
	"information about your results later. Any free text you provide will " +
	"also not be stored or analysed beyond your queries."

const augmentationPromptText = "Would you like to provide additional " +
	"information, for instance on a contrast or experimental design? If so, " +
	"please enter it below; if not, please enter 'no'."

const okWithoutSpecText = "Okay, I will use the information from the tool " +
	"without further specification."

const augmentationThanksText = "Thank you for the input!"

const manualPromptText = "Please provide a list of biological data points " +
	"(activities of pathways or transcription factors, expression of " +
	"transcripts or proteins), optionally with directional information " +
	"and/or a contrast. Since you did not provide any tool data, please try " +
	"to be as specific as possible. You can also paste `markdown` tables or " +
	"other structured data here."

const modelErrorPrefix = "The model appears to have encountered an error. "

// keyPrompt asks for the provider credential of the selected model.
func keyPrompt(m backend.Model, community bool) string {
	switch m {
	case backend.ModelHuggingFace:
		return "Please enter your [HuggingFace Hub API " +
			"key](https://huggingface.co/settings/token). You can get one by " +
			"signing up [here](https://huggingface.co/). We will not store " +
			"your key, and only use it for the requests made in this session. " +
			"If you run the app locally, you can prevent this message by " +
			"setting the environment variable `HUGGINGFACEHUB_API_TOKEN` to " +
			"your key."
	case backend.ModelGemini:
		return "Please enter your [Google AI Studio API " +
			"key](https://aistudio.google.com/app/apikey). We will not store " +
			"your key, and only use it for the requests made in this session. " +
			"If you run the app locally, you can prevent this message by " +
			"setting the environment variable `GOOGLE_API_KEY` to your key."
	default:
		msg := "Please enter your [OpenAI API " +
			"key](https://platform.openai.com/account/api-keys). You can get " +
			"one by signing up [here](https://platform.openai.com/). We will " +
			"not store your key, and only use it for the requests made in " +
			"this session. If you run the app locally, you can prevent this " +
			"message by setting the environment variable `OPENAI_API_KEY` to " +
			"your key."
		if community {
			msg += " If there are community credits available, you can enter " +
				"'community' to use them, but please be considerate of other " +
				"users and only use the community credits if you need to."
		}
		return msg
	}
}

// nameRequest asks for the user's name; thank acknowledges a key the user
// just typed (as opposed to one found in the environment).
func nameRequest(thank bool) string {
	msg := "I am the model's assistant. We will now be going through some " +
		"initial setup steps together. To get started, could you please " +
		"tell me your name?"
	if thank {
		return "Thank you! " + msg
	}
	return msg
}

func contextRequest(name string) string {
	return fmt.Sprintf("Thank you, `%s`! What is the context of your "+
		"inquiry? For instance, this could be a disease, an experimental "+
		"design, or a research area.", name)
}

func dataPromptNoFiles(topic string, tools []string, tokenLimit int) string {
	return fmt.Sprintf("You have selected `%s` as your context. Do you want "+
		"to provide input files from analytic methods? They will not be "+
		"stored or analysed beyond your queries. If so, please provide the "+
		"files by uploading them and enter 'yes' once you are finished. I "+
		"will recognise methods if their names are mentioned in the file "+
		"name. These are the tools I am familiar with: %s. Please keep in "+
		"mind that all data you provide will count towards the token usage "+
		"of your conversation prompt. The limit of the currently active "+
		"model is %d.", topic, backtickJoin(tools), tokenLimit)
}

func dataPromptWithFiles(topic string, names []string) string {
	return fmt.Sprintf("You have selected `%s` as your context. I see you "+
		"have already uploaded some data files: %s. If you wish to add "+
		"more, please do so now. Once you are done, please enter 'yes'.",
		topic, backtickJoin(names))
}

func filesReadText(names []string) string {
	return fmt.Sprintf("Thank you! I have read the following %d files: %s.",
		len(names), backtickJoin(names))
}

func allReadText() string {
	return "I have read all the files you provided. " + pleaseEnterQuestions
}

func toolHeaderText(tool string) string {
	return fmt.Sprintf("`%s` results", tool)
}

func unknownToolText(tool string, tools []string) string {
	return fmt.Sprintf("Sorry, `%s` is not among the tools I know (%s). "+
		"Please provide information about the data below (what are rows "+
		"and columns, what are the values, etc.).", tool, backtickJoin(tools))
}

func parseFailText(fileName string, err error) string {
	return fmt.Sprintf("Sorry, I could not read `%s` as tabular data (%v). "+
		"I will skip it and continue with the remaining files.", fileName, err)
}

func tokenAdvisoryText(fileName string, estimate, remaining int) string {
	return fmt.Sprintf("Note: the data from `%s` is roughly %d tokens, "+
		"which exceeds the remaining capacity of the current model "+
		"(%d tokens). Answers may be incomplete; consider uploading a "+
		"smaller slice of the results.", fileName, estimate, remaining)
}

func manualThanksText() string {
	return "Thank you for the input. " + pleaseEnterQuestions
}

// IsNegativeAck reports whether text is one of the literal negative
// acknowledgements. This is deliberately a narrow set, not a yes/no parser:
// anything else, including "nope", counts as augmentation content.
func IsNegativeAck(text string) bool {
	switch strings.ToLower(text) {
	case "n", "no", "no.":
		return true
	}
	return false
}

func backtickJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}
