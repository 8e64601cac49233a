package keywords

import (
	"fmt"
	"strings"
)

// System messages for the pipeline's completion calls.
const (
	extractionSystemMessage = "You are a helpful assistant that extracts exact keywords from job descriptions for ATS."
	simplifiedSystemMessage = "You are a helpful assistant that extracts keywords from job descriptions."
	matchSystemMessage      = "You are a helpful assistant that finds keywords in resumes and returns valid JSON. You are strict about only including keywords with genuine matches."
	citationSystemMessage   = "You are a helpful assistant that finds evidence in resumes and returns structured text. You are strict about only including keywords with genuine matches and omitting those without clear evidence."
	citationFallbackSystem  = "You are a helpful assistant that finds evidence in resumes."
)

func extractionPrompt(jobDescription, resumeText, jobTitle, companyName, industry string) (prompt string) {
	resumeSection := ""
	if resumeText != "" {
		resumeSection = fmt.Sprintf("\n\nResume Text (optional):\n%s", resumeText)
	}

	prompt = fmt.Sprintf(`You are an AI assistant specialized in extracting keywords and phrases from job descriptions for Applicant Tracking System (ATS) optimization. Your goal is to identify ALL skills, competencies, qualifications, and important concepts from the ENTIRE job description, including introductory paragraphs, responsibilities, requirements, and any other sections.

IMPORTANT INSTRUCTIONS:

1. SCAN THE ENTIRE JOB DESCRIPTION:
   - Process ALL sections including introduction, about the company, responsibilities, requirements, qualifications, etc.
   - Pay special attention to bullet points, which often contain key skills and requirements
   - Don't miss important keywords in paragraph text or section headers

2. EXTRACT SKILLS AND QUALIFICATIONS:
   - Technical skills (e.g., programming languages, tools, platforms)
   - Soft skills (e.g., communication, leadership, problem-solving)
   - Domain knowledge (e.g., healthcare, finance, marketing)
   - Certifications and education requirements
   - Experience requirements (e.g., years of experience, specific roles)

3. HANDLE MULTI-WORD PHRASES PROPERLY:
   - Break down compound phrases connected by "and", "or", or commas into separate keywords
   - Example: "Experience leading executive engagements and influencing decision-makers" should become TWO separate keywords:
     * "Experience leading executive engagements"
     * "Influencing decision-makers"
   - Keep phrases concise (2-5 words) while maintaining their meaning
   - Ensure each keyword represents a single, distinct skill or qualification

4. RANK BY PRIORITY:
   - High priority: Required skills, must-have qualifications, or skills mentioned multiple times
   - Medium priority: Preferred skills, desired qualifications, or skills mentioned in key responsibilities
   - Low priority: Nice-to-have skills, background context, or skills mentioned only once in less critical sections

5. OUTPUT FORMAT:
   {
     "high_priority": [
       { "keyword": "specific skill or qualification", "score": 0.95 },
       ...
     ],
     "medium_priority": [
       { "keyword": "specific skill or qualification", "score": 0.75 },
       ...
     ],
     "low_priority": [
       { "keyword": "specific skill or qualification", "score": 0.50 },
       ...
     ]
   }

Each keyword should appear only once (no duplicates).
"score" is a numeric weight between 0.0 and 1.0, reflecting relative importance.
Ensure the JSON output is valid (no markdown formatting).

JOB CONTEXT:
Job Title: %s
Company: %s
Industry: %s

Job Description:
%s%s`, jobTitle, companyName, industry, jobDescription, resumeSection)

	return prompt
}

func simplifiedExtractionPrompt(jobDescription string) (prompt string) {
	prompt = fmt.Sprintf(`Extract the most important skills, qualifications, and requirements from this job description.
Return them as a simple JSON with high_priority, medium_priority, and low_priority arrays.
Each array should contain objects with 'keyword' and 'score' properties.

Job Description:
%s`, jobDescription)

	return prompt
}

func matchPrompt(sanitizedKeywords []string, sanitizedResume string) (prompt string) {
	prompt = fmt.Sprintf(`I have a list of keywords and a resume. I need you to find which keywords appear in the resume.

IMPORTANT INSTRUCTIONS:
1. Thoroughly scan the ENTIRE resume, including ALL sections.
2. For each keyword, determine if it appears in the resume (exact match or semantic equivalent).
3. Use your semantic understanding to identify matches based on meaning, not just exact words:
   - Look for semantic equivalents (e.g., "Customer" and "Client" are semantically equivalent)
   - Identify conceptual matches (e.g., "Data Analytics" might be evidenced by "metrics tracking")
4. Be VERY strict about requiring genuine evidence. DO NOT force matches that aren't genuinely there.
5. If you're unsure about a match, mark it as false (not found).

Your response MUST be a valid JSON object where:
- Each key is one of the keywords
- Each value is a boolean (true if found in resume, false if not found)

Keywords:
%s

Resume:
%s`, strings.Join(sanitizedKeywords, ", "), sanitizedResume)

	return prompt
}

func citationPrompt(sanitizedKeywords []string, sanitizedResume string) (prompt string) {
	prompt = fmt.Sprintf(`I have a list of keywords and a resume. I need you to find evidence in the resume that supports each keyword.

IMPORTANT INSTRUCTIONS:
1. Thoroughly scan the ENTIRE resume, including ALL sections:
   - Work experience
   - Projects
   - Hackathons
   - Volunteer work
   - Education
   - Certifications
   - Skills sections
   - Any other non-standard sections

2. For each keyword, find the most relevant sentence or phrase from ANY part of the resume that demonstrates the candidate's experience or skills related to that keyword.

3. Use your semantic understanding to identify matches based on meaning, not just exact words:
   - Look for semantic equivalents (e.g., "Customer" and "Client" are semantically equivalent)
   - Identify conceptual matches (e.g., "Data Analytics" might be evidenced by "metrics tracking" or "performance analysis")
   - Recognize when different terminology is used for the same concept

4. For compound phrases, look for evidence where the components appear in proximity or where the concept is described using different words.
   - Example: For "Enterprise Customer Management", look for evidence of managing relationships with large corporate clients
   - Example: For "Customer Health Monitoring", look for evidence of tracking client satisfaction or analyzing customer metrics

5. Look beyond job titles and formal roles - evidence can be found in project descriptions, achievements, or hackathon participation.

6. Prioritize finding evidence for ALL keywords, especially high-priority ones, but be strict about requiring genuine evidence.

7. Format your response using this EXACT structure for each keyword that has evidence:

   KEYWORD: [exact keyword text]
   CITATION: [brief excerpt from resume that provides evidence]
   EXACT_PHRASE: [the exact phrase or words in the resume that most closely match the keyword]

   Only include keywords that have clear supporting evidence in the resume. DO NOT force matches that aren't genuinely there.

8. Be especially careful with technical or domain-specific terms (like "Audiovisual Content" or "Generative Media") - only include these if there is explicit evidence in the resume.

9. IMPORTANT: Keep each citation brief (1-2 sentences maximum) to avoid exceeding token limits.

10. For the EXACT_PHRASE field, provide the specific words or phrase from the resume that most closely match the keyword semantically. This should be a short phrase (2-5 words) that can be highlighted in the resume. If the keyword appears verbatim in the resume, use that exact occurrence.

Keywords:
%s

Resume:
%s`, strings.Join(sanitizedKeywords, ", "), sanitizedResume)

	return prompt
}

func citationFallbackPrompt(sanitizedKeywords []string, sanitizedResume string) (prompt string) {
	prompt = fmt.Sprintf(`I have a list of keywords and a resume. Find evidence for each keyword.

For each keyword, provide a brief excerpt from the resume that demonstrates this skill.

IMPORTANT:
1. Scan the ENTIRE resume - work experience, projects, hackathons, education, etc.
2. Use your semantic understanding to find matches based on meaning
3. Be strict - only include keywords with genuine evidence
4. DO NOT force matches that aren't genuinely there
5. Keep each citation brief (1-2 sentences maximum)

Format your response EXACTLY like this for each keyword:

KEYWORD: [keyword]
CITATION: [evidence]

Only include keywords with clear evidence.

Keywords:
%s

Resume (excerpt):
%s`, strings.Join(sanitizedKeywords, ", "), sanitizedResume)

	return prompt
}
