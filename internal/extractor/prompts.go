package extractor

// Default prompt templates. Each receives the resume text at %s.
const (
	DefaultNamePrompt = `You will be given the text of a resume. Identify the candidate's full name.
Reply with the name only, without labels, quotes or formatting.
If the resume does not contain a name, reply with "not found".

Resume text:
%s`

	DefaultEmailPrompt = `You will be given the text of a resume. Identify the candidate's email address.
Reply with the email address only, without labels, quotes or formatting.
If the resume does not contain an email address, reply with "not found".

Resume text:
%s`

	DefaultSkillsPrompt = `You will be given the text of a resume. List the candidate's skills.
Reply with the skills separated by commas and nothing else, for example: Python,Java,SQL
If the resume does not list any skills, reply with "not found".

Resume text:
%s`

	// Wraps the instruction of a custom field
	customPromptFrame = `You will be given the text of a resume. %s
Reply with the value only, without labels, quotes or formatting.
If the resume does not contain it, reply with "not found".

Resume text:
%s`

	// Wraps the instruction of a multi-valued custom field
	customListPromptFrame = `You will be given the text of a resume. %s
Reply with the values separated by commas and nothing else.
If the resume does not contain any, reply with "not found".

Resume text:
%s`
)
