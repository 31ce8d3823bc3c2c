// Package el provides the UI DSL for Loom.
//
// It wraps the vdom node constructors with named HTML element functions,
// conditional helpers, and list helpers, so views read as markup:
//
//	el.Div(vdom.Attrs{"class": "card"},
//	    el.H1("Tasks"),
//	    el.Ul(el.Range(tasks, func(t Task, _ int) *vdom.VNode {
//	        return el.Li(t.Name)
//	    })),
//	)
//
// The DSL lives in a dedicated package so the diffing APIs in vdom stay small.
package el
