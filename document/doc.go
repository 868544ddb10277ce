// Package document renders a survey.Definition as a static HTML form, for
// printing or for collecting answers outside the terminal. The output is a
// complete page; each input is named by the answer path it corresponds to.
package document
