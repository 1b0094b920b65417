// Package prompt collects operator input: yes/no confirmations and secrets.
//
// On a terminal the questions are rendered with huh forms. Anywhere else
// (pipes, files, CI) a plain line reader is used, so the same run can be
// scripted by feeding answers on stdin.
package prompt
