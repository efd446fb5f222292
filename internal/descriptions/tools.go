package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	ThesisScanFileDescription = `Run the full thesis manuscript check against a DOCX or PDF file.

**When to use:** Need a complete formatting and structure review of a thesis manuscript against the institute template.

**Why it's useful:** Classifies every paragraph (headings, body text, block quotes, captions, bibliography entries and more), tracks the manuscript zone from cover to back matter, and reports every template violation with its paragraph location and severity.

**Examples:**
• Pre-submission review: "Scan tez-final.docx and list every formatting problem"
• Committee feedback pass: "Check chapter numbering and heading styles in revision-3.docx"
• PDF spot check: "Scan the print-ready thesis.pdf for indentation and spacing issues"

**Common workflows:**
1. Submission Prep: Validate file → Scan → Fix CRITICAL findings → Re-scan until clean
2. Iterative Editing: Scan → Review findings by paragraph → Edit → Re-scan
3. Archive Audit: Scan deposited PDFs → Collect summaries → Flag non-conforming manuscripts

**Best practices:** Prefer the DOCX rendition when available; PDF scans work from rendered geometry only, so style and numbering signals are weaker. Fix CRITICAL findings before FORMAT ones.`

	ThesisClassifyTextDescription = `Classify plain text lines through the paragraph decision chain without a document file.

**When to use:** Want to see how specific paragraph texts would be zoned and typed, without building a DOCX or PDF.

**Why it's useful:** Exposes the zone tracker and classifier directly, which makes it easy to understand why a paragraph in a real manuscript was classified the way it was.

**Examples:**
• Debug a heading: "Classify the line 'GİRİŞ' and show which zone it lands in"
• Trace front matter: "Classify 'ÖZET', a summary paragraph, then 'ABSTRACT' in order"
• Check numbering: "See how '2.1. Araştırmanın Amacı' is typed"

**Common workflows:**
1. Rule Exploration: Classify sample lines → Compare types → Adjust manuscript text
2. Scan Triage: Copy a misclassified paragraph's text → Classify it alone → See which rule fired

**Best practices:** Lines are processed in order and zone state carries across them, so feed them in manuscript order. Only text-driven rules fire here; formatting checks need a real file scan.`

	ThesisValidateFileDescription = `Verify a manuscript file is readable before scanning it.

**When to use:** Before scanning any manuscript, especially user-provided files or automated pipelines.

**Why it's useful:** Catches corrupted packages, wrong extensions, oversize files, and broken PDFs early, and reports page count and PDF version for valid PDFs.

**Examples:**
• Upload check: "Validate uploaded-thesis.docx before running the scan"
• Batch safety: "Validate every PDF in /deposits/ before the nightly audit"

**Common workflows:**
1. Automated Processing: Validate → Scan if valid → Report errors otherwise
2. Intake Pipeline: Validate → Route DOCX and PDF to the right scan

**Best practices:** Always run this first in automated workflows; validation failures return a message instead of an error so pipelines can branch on the result.`

	ThesisServerInfoDescription = `Get server information, supported formats, and the active classification rule chain.

**When to use:** First contact with the server, or when deciding which tool fits a task.

**Why it's useful:** Reports the server name and version, the file size limit, supported manuscript formats, and the ordered list of classification rules the scanner applies.

**Examples:**
• Orientation: "What can this server do and what formats does it accept?"
• Rule audit: "List the classification rules in the order they are tried"

**Best practices:** Call once at the start of a session to learn the limits before sending large files.`
)
