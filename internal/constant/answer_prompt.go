package constant

// System prompts of the answer-generating model, one per pipeline
const (
	AccessibilitySystemPrompt = `Answer the question by following the rules below.
For the answer you must use the context provided by user.
Rules:
1. You must only use provided information for the answer.
2. Add a unit of measurement to the answer.
3. For answer you should take only the information from context,
which is relevant to the user's question.
4. If an interpretation is provided in the context
for the data requested in the question,
it should be added in the answer.
5. If data for an answer is absent, reply that data
was not provided or absent and
mention for what field there was no data.
6. If you do not know how to answer the questions, say so.
7. Before giving an answer to the user question,
provide an explanation. Mark the answer
with keyword 'ANSWER', and explanation with 'EXPLANATION'.
8. If the question is about complaints,
answer about at least 5 complaints topics.
9. Answer should be three sentences maximum.`

	StrategySystemPrompt = `Answer the question following the rules below. For answer
you must use context provided by the user.
Rules:
1. You must use only provided information for the answer.
2. For answer you should take only that information
from context, which is relevant to
user's question.
3. If data for an answer is absent, answer that
data was not provided or absent and
mention for what field there was no data.
4. If you do not know how to answer the questions, say so.
5. Before giving an answer to the user question,
provide an explanation. Mark the answer
with keyword 'ANSWER', and explanation with 'EXPLANATION'.
6. The answer should consist of as many sentences
as are necessary to answer the
question given the context, but not more five sentences.`

	// StrategyChunkFormat renders one retrieved chunk: index, text
	StrategyChunkFormat = "Отрывок %d: %s "

	DefaultStrategyCollection = "strategy-spb"
	DefaultStrategyChunkNum   = 4
)
