package report

import (
	"fmt"
	"strings"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
)

// latexReplacer escapes characters that are special in LaTeX source.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes s for safe inclusion in LaTeX source.
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}

// BuildFeedbackLaTeX renders a feedback analysis as a standalone LaTeX document.
func BuildFeedbackLaTeX(title string, rep *models.FeedbackReport) string {
	var b strings.Builder

	b.WriteString(`\documentclass[11pt,a4paper]{article}
\usepackage[margin=2cm]{geometry}
\usepackage{booktabs}
\usepackage{longtable}
\usepackage{pgfplots}
\pgfplotsset{compat=1.17}
\usepackage[hidelinks]{hyperref}
`)
	fmt.Fprintf(&b, "\\title{%s}\n", EscapeLaTeX(title))
	b.WriteString(`\date{\today}
\begin{document}
\maketitle

\section{Overall Summary}
`)
	writeSummary(&b, rep.Overall)
	writeQuestionChart(&b, rep.Overall.QuestionMeans)

	b.WriteString("\n\\section{Subject-wise Analysis}\n")
	b.WriteString("\\begin{longtable}{p{2cm}p{5cm}p{4cm}rr l}\n\\toprule\nCode & Subject & Faculty & Mean & Count & Rating \\\\\n\\midrule\n")
	for _, s := range rep.Subjects {
		fmt.Fprintf(&b, "%s & %s & %s & %.2f & %d & %s \\\\\n",
			EscapeLaTeX(s.SubjectCode), EscapeLaTeX(s.SubjectName), EscapeLaTeX(s.FacultyName),
			s.Summary.Mean, s.Summary.Count, RatingLabel(s.Summary.Mean))
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")

	b.WriteString("\n\\section{Faculty-wise Analysis}\n")
	b.WriteString("\\begin{longtable}{p{6cm}rrr l}\n\\toprule\nFaculty & Mean & Std Dev & Count & Rating \\\\\n\\midrule\n")
	for _, f := range rep.Faculty {
		fmt.Fprintf(&b, "%s & %.2f & %.2f & %d & %s \\\\\n",
			EscapeLaTeX(f.FacultyName), f.Summary.Mean, f.Summary.StdDev, f.Summary.Count, RatingLabel(f.Summary.Mean))
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")

	b.WriteString("\n\\section{Semester-wise Analysis}\n")
	b.WriteString("\\begin{longtable}{p{4cm}rrr l}\n\\toprule\nBranch & Semester & Mean & Count & Rating \\\\\n\\midrule\n")
	for _, s := range rep.Semesters {
		fmt.Fprintf(&b, "%s & %d & %.2f & %d & %s \\\\\n",
			EscapeLaTeX(s.Branch), s.Semester, s.Summary.Mean, s.Summary.Count, RatingLabel(s.Summary.Mean))
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")

	b.WriteString("\n\\section{Branch-wise Analysis}\n")
	b.WriteString("\\begin{longtable}{p{5cm}rr l}\n\\toprule\nBranch & Mean & Count & Rating \\\\\n\\midrule\n")
	for _, br := range rep.Branches {
		fmt.Fprintf(&b, "%s & %.2f & %d & %s \\\\\n",
			EscapeLaTeX(br.Branch), br.Summary.Mean, br.Summary.Count, RatingLabel(br.Summary.Mean))
	}
	b.WriteString("\\bottomrule\n\\end{longtable}\n")

	b.WriteString("\n\\section{Recommendations}\n\\begin{itemize}\n")
	fmt.Fprintf(&b, "\\item %s\n", EscapeLaTeX(rep.Overall.Recommendation))
	for _, f := range rep.Faculty {
		if f.Summary.Recommendation != "" && RatingLabel(f.Summary.Mean) == "Needs Improvement" {
			fmt.Fprintf(&b, "\\item %s: %s\n", EscapeLaTeX(f.FacultyName), EscapeLaTeX(f.Summary.Recommendation))
		}
	}
	b.WriteString("\\end{itemize}\n\n\\end{document}\n")

	return b.String()
}

func writeSummary(b *strings.Builder, s models.ScoreSummary) {
	b.WriteString("\\begin{tabular}{lr}\n\\toprule\n")
	fmt.Fprintf(b, "Responses & %d \\\\\n", s.Count)
	fmt.Fprintf(b, "Mean & %.2f \\\\\n", s.Mean)
	fmt.Fprintf(b, "Median & %.2f \\\\\n", s.Median)
	fmt.Fprintf(b, "Std Dev & %.2f \\\\\n", s.StdDev)
	fmt.Fprintf(b, "Min & %.2f \\\\\n", s.Min)
	fmt.Fprintf(b, "Max & %.2f \\\\\n", s.Max)
	fmt.Fprintf(b, "Rating & %s \\\\\n", RatingLabel(s.Mean))
	b.WriteString("\\bottomrule\n\\end{tabular}\n")
}

func writeQuestionChart(b *strings.Builder, means []float64) {
	if len(means) == 0 {
		return
	}
	b.WriteString(`
\begin{center}
\begin{tikzpicture}
\begin{axis}[
  ybar,
  width=\textwidth,
  height=7cm,
  ymin=0, ymax=5,
  ylabel={Average Score},
  xlabel={Question},
  xtick=data,
  nodes near coords,
  nodes near coords align={vertical},
]
\addplot coordinates {`)
	for i, m := range means {
		fmt.Fprintf(b, " (%d,%.2f)", i+1, m)
	}
	b.WriteString(` };
\end{axis}
\end{tikzpicture}
\end{center}
`)
}
