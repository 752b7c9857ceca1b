package app

import "github.com/felixbrock/monument/internal/components"

type errCtx struct {
	Code  int
	Title string
	Msg   string
}

func (e errCtx) props() components.ErrorProps {
	return components.ErrorProps{Code: e.Code, Title: e.Title, Msg: e.Msg}
}

func get404() errCtx {
	return errCtx{
		Code:  404,
		Title: "Not found",
		Msg:   "Sorry, we couldn't find the page you were looking for.",
	}
}

func get405() errCtx {
	return errCtx{
		Code:  405,
		Title: "Method not allowed",
		Msg:   "Sorry, this page can only be read.",
	}
}

func get429() errCtx {
	return errCtx{
		Code:  429,
		Title: "Too many requests",
		Msg:   "Sorry, you are sending requests too quickly. Please try again shortly.",
	}
}

func get500() errCtx {
	return errCtx{
		Code:  500,
		Title: "Internal server error",
		Msg:   "Sorry, there was an internal server error.",
	}
}
