// Package ruledoc loads rule documents and extracts the placeholder tokens
// from their templates.
//
// A rule document is a JSON file such as:
//
//	{
//	  "rule": "{date}_{client}_{title}",
//	  "selection": {
//	    "date": "yyyyMMdd",
//	    "client": ["Acme", "Globex"]
//	  }
//	}
//
// The rule is a template where every {token} is replaced with a value chosen
// by the user. Entries in selection describe how a token is offered: a string
// is a date pattern used to pre-fill the token, and a list of strings is a set
// of choices.
package ruledoc
