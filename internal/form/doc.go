/*
Package form flattens SQS action payloads into form-urlencoded fields.

Nested values are written under dot-joined key paths, so a payload like

	{Tags: {env: "prod"}, Actions: ["a", "b"]}

becomes the fields

	Tags.env=prod
	Actions=a,b

Typed payloads implement [Marshaler] and write their own fields through an [Encoder];
untyped documents can be flattened directly with [Flatten].
*/
package form
