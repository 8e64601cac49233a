package generate

import "fmt"

// System messages for generation calls.
const (
	profileSystemMessage      = "You are a professional resume writer specializing in concise career profiles."
	competenciesSystemMessage = "You are a professional resume writer specializing in identifying core competencies."
	citationSystemMessage     = "You are a helpful assistant that finds evidence in resumes."
)

func profilePrompt(jobDescription, resumeText, jobTitle, companyName, industry string) (prompt string) {
	prompt = fmt.Sprintf(`You are a resume-writing assistant specialized in crafting highly targeted, concise career profiles.
Your task is to clearly demonstrate in one sentence why the candidate is the ideal match for the specific "%[1]s" role without summarizing the entire career.
This concise sentence should follow the structured format:

Who you are.

Your relevant experience (focus on competencies, not specific technical skills).

Which industries you've got experience in.

JOB CONTEXT:
- Job Title: %[1]s
- Company: %[2]s
- Industry: %[3]s

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

2. Look for the STRONGEST and most relevant competencies from ANY part of the resume that match the job description,
   with special attention to those that align with the "%[1]s" role.

3. If multiple instances of a competency exist across different jobs/experiences, choose the strongest examples
   that best demonstrate the depth of experience, regardless of how recent they are.

4. Look beyond job titles and formal roles - evidence can be found in project descriptions, achievements, or hackathon participation.

5. DO NOT include phrases like "aligning with the job description" or "matching the requirements" in your output.

6. DO NOT mention the company name from the job description in your output.

7. DO NOT reference the job description itself in any way in your output.

8. The career profile should stand on its own as a professional statement without any meta-references.

9. Focus on competencies (e.g., "executive communication", "team leadership", "strategic planning") rather than specific technical skills or tools (e.g., "Outlook", "Python", "AWS").

10. Highlight broader capabilities that demonstrate value, not the specific technologies used to deliver that value.

11. Tailor the seniority level in your profile to match the seniority of the "%[1]s" role.

12. If the company name suggests a specific industry (e.g., healthcare, finance, tech), emphasize relevant experience in that industry.

Example of a good career profile:
Senior technology leader with demonstrated expertise in digital transformation, strategic planning, and building high-performing teams in the financial services and healthcare sectors.

Example of what NOT to include:
"Senior developer with expertise in Python, AWS, and React" (too focused on specific technologies)
"...aligning with the key requirements specified in the job description" (references the job description)
"...matching perfectly with [Company Name]'s needs" (mentions company name)

Job Description:
%[4]s

Master Resume:
%[5]s

Generate a concise career profile for the "%[1]s" role:`, jobTitle, companyName, industry, jobDescription, resumeText)

	return prompt
}

func competenciesPrompt(jobDescription, resumeText, jobTitle, companyName, industry string) (prompt string) {
	prompt = fmt.Sprintf(`You are a resume-writing assistant specialized in identifying core competencies that match a job description and are supported by a candidate's resume.

Your task is to extract up to 15 core competencies from the job description that are also evident in the candidate's resume, with special focus on those most relevant for the "%[1]s" role at %[2]s. Format these as a comma-separated list.

JOB CONTEXT:
- Job Title: %[1]s
- Company: %[2]s
- Industry: %[3]s

IMPORTANT INSTRUCTIONS:
1. Focus on broader competencies (e.g., "Strategic Planning", "Team Leadership", "Process Optimization") rather than specific technical skills or tools.

2. Do NOT include technical skills (computer software, technical certifications, etc.) - these belong in a skills section.

3. For example, "Software Development" would be a competency, while "Python" would be a skill (so include Software Development, not Python).

4. Thoroughly scan the ENTIRE resume, including ALL sections:
   - Work experience
   - Projects
   - Hackathons
   - Volunteer work
   - Education
   - Certifications
   - Skills sections
   - Any other non-standard sections

5. Look beyond job titles and formal roles - evidence can be found in project descriptions, achievements, or hackathon participation.

6. Only include competencies that are both mentioned in the job description AND supported by evidence in the resume.

7. Include as many relevant competencies as possible, up to 15, as long as they are truly relevant to both the job description and resume.

8. Format the output as a simple comma-separated list (e.g., "Strategic Planning, Team Leadership, Process Optimization, Budget Management").

9. Each competency should be capitalized and separated by a comma and space.

10. Prioritize competencies that are most relevant to the "%[1]s" role, considering the seniority level and responsibilities typically associated with this position.

11. If the company name suggests a specific industry (e.g., healthcare, finance, tech), prioritize competencies that are particularly valuable in that industry.

12. Consider the company size and type when selecting competencies (e.g., startup vs. enterprise, B2B vs. B2C).

Job Description:
%[4]s

Master Resume:
%[5]s

Generate a comma-separated list of up to 15 core competencies specifically tailored for the "%[1]s" role at %[2]s:`, jobTitle, companyName, industry, jobDescription, resumeText)

	return prompt
}

func profileCitationsPrompt(sanitizedProfile, sanitizedResume, jobTitle, companyName, industry string) (prompt string) {
	prompt = fmt.Sprintf(`I have a career profile for a "%[1]s" role at %[2]s and a master resume. I need you to thoroughly scan the ENTIRE resume to identify where the competencies and keywords
mentioned in the career profile are supported by evidence in the master resume.

JOB CONTEXT:
- Job Title: %[1]s
- Company: %[2]s
- Industry: %[3]s

IMPORTANT INSTRUCTIONS:
1. Scan the ENTIRE resume, including ALL sections:
   - Work experience
   - Projects
   - Hackathons
   - Volunteer work
   - Education
   - Certifications
   - Skills sections
   - Any other non-standard sections

2. For each key competency or keyword in the career profile, find the STRONGEST and most relevant evidence
   from ANY part of the resume that demonstrates this skill or competency.

3. If multiple instances of a competency exist across different jobs/experiences, choose the strongest example
   that best demonstrates the depth of experience, regardless of how recent it is.

4. Look beyond job titles and formal roles - evidence can be found in project descriptions, achievements, or hackathon participation.

5. Use your semantic understanding to identify matches based on meaning, not just exact words:
   - Look for semantic equivalents (e.g., "Customer" and "Client" are semantically equivalent)
   - Identify conceptual matches (e.g., "Data Analytics" might be evidenced by "metrics tracking" or "performance analysis")
   - Recognize when different terminology is used for the same concept

6. For compound phrases, look for evidence where the components appear in proximity or where the concept is described using different words.
   - Example: For "Enterprise Customer Management", look for evidence of managing relationships with large corporate clients
   - Example: For "Customer Health Monitoring", look for evidence of tracking client satisfaction or analyzing customer metrics

7. Be strict about requiring genuine evidence. DO NOT force matches that aren't genuinely there. Only include competencies with clear supporting evidence.

Return a JSON object where:
- Each key is a competency or keyword from the career profile
- Each value is a brief excerpt from the master resume (1-2 sentences) that provides the strongest evidence for this competency

Focus on the most important 3-5 competencies only. Do not include generic skills that are not specifically evidenced.

Career Profile:
%[4]s

Master Resume:
%[5]s`, jobTitle, companyName, industry, sanitizedProfile, sanitizedResume)

	return prompt
}

func competenciesCitationsPrompt(sanitizedCompetencies, sanitizedResume, jobTitle, companyName, industry string) (prompt string) {
	prompt = fmt.Sprintf(`I have a list of core competencies for a "%[1]s" role at %[2]s and a master resume. I need you to thoroughly scan the ENTIRE resume to identify where each competency
is supported by evidence in the master resume.

JOB CONTEXT:
- Job Title: %[1]s
- Company: %[2]s
- Industry: %[3]s

IMPORTANT INSTRUCTIONS:
1. Scan the ENTIRE resume, including ALL sections:
   - Work experience
   - Projects
   - Hackathons
   - Volunteer work
   - Education
   - Certifications
   - Skills sections
   - Any other non-standard sections

2. For each competency, find the STRONGEST and most relevant evidence
   from ANY part of the resume that demonstrates this skill or competency.

3. If multiple instances of a competency exist across different jobs/experiences, choose the strongest example
   that best demonstrates the depth of experience, regardless of how recent it is.

4. Look beyond job titles and formal roles - evidence can be found in project descriptions, achievements, or hackathon participation.

5. Use your semantic understanding to identify matches based on meaning, not just exact words:
   - Look for semantic equivalents (e.g., "Customer" and "Client" are semantically equivalent)
   - Identify conceptual matches (e.g., "Data Analytics" might be evidenced by "metrics tracking" or "performance analysis")
   - Recognize when different terminology is used for the same concept

6. For compound phrases, look for evidence where the components appear in proximity or where the concept is described using different words.
   - Example: For "Strategic Planning", look for evidence of developing long-term strategies or roadmaps
   - Example: For "Cross-functional Collaboration", look for evidence of working across departments or teams

7. Be strict about requiring genuine evidence. DO NOT force matches that aren't genuinely there. Only include competencies with clear supporting evidence.

Return a JSON object where:
- Each key is one of the competencies
- Each value is a brief excerpt from the master resume (1-2 sentences) that provides the strongest evidence for this competency

Competencies:
%[4]s

Master Resume:
%[5]s`, jobTitle, companyName, industry, sanitizedCompetencies, sanitizedResume)

	return prompt
}
