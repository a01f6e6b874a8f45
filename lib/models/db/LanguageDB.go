package db

type LanguageDB struct {
	Code   string
	Name   string
	Active bool
}
