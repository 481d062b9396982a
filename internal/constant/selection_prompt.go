package constant

// Prompts of the function-calling selector and verifier models.
// Placeholders are filled with fmt.Sprintf in the order they appear.
const (
	// %s: rendered tool set
	FunctionCallingSystemPrompt = `You are a helpful assistant with access to the following functions. Use them if required - %s.`

	// %s: question
	FunctionCallingUserPrompt = `Extract all relevant data for answering this question: %s
You MUST return ONLY the function names separated by spaces.
Do NOT return any other additional text.`

	// %s: question
	BinaryFunctionCallingUserPrompt = `Extract all relevant data for answering this question: %s
You MUST return ONLY the function name.
Do NOT return any other additional text.`

	VerifierSystemPrompt = `You are a good assistant, who will be offered with 100$ tips for each correct answer.`

	// %s: question, proposed functions, rendered tool set
	FunctionVerifierUserPrompt = `[Instruction]: You are given a question, functions descriptions and an answer.
Your task is to compare the chosen function with the question and the descriptions and determine
if the function was selected correctly. If the chosen function is correct, return the function name.
If the function is selected incorrectly, return the name of the correct function.
[Question]: %s.
[Answer]: %s.
[Function Descriptions]: %s.
You MUST return ONLY the correct functions in this format:
[Correct answer]: correct function.
Do NOT return Context.`

	// %s: question, proposed pipeline, rendered tool set
	PipelineVerifierUserPrompt = `[Instruction]: You are given a question, descriptions of 2 functions and an answer from another
model, which has chosen one of these functions. Your task is to compare
the chosen function with the question and the descriptions and determine
if the function was selected correctly. If the chosen function is correct,
return the function name. If the function is selected incorrectly, return the name
of another function.
[Question]: %s.
[Answer]: %s.
[Function Descriptions]: %s.
[Task]:
Compare the chosen function with the function descriptions and the question to determine if the function
was selected correctly. Return the name of correct function in this format:
[Correct answer]: correct function.
Do NOT return Context.`
)
