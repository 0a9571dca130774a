/*
Package helmet compiles declarative security-header configurations,
in the manner of [helmet], into lists of header instructions, and provides
[net/http] middleware that applies those instructions to responses.

This package performs extensive configuration validation
in order to prevent you from inadvertently sending malformed or
ineffective security headers. In particular, it rejects
Content-Security-Policy sources that would let an attacker smuggle
extra directives (by way of a semicolon) or extra policies
(by way of a comma) into the header.

Configuration is compiled once, ahead of any request:
neither [Compile] nor [NewMiddleware] is meant to be called per request.
The resulting [Middleware] merely replays precomputed instructions.

Some rules to keep in mind:

  - Strict-Transport-Security is ignored by browsers
    on responses delivered over plain HTTP;
    see [RFC 6797].
  - The default Content-Security-Policy includes upgrade-insecure-requests,
    which you should disable during local development over plain HTTP.
  - Multiple security-headers middleware [SHOULD NOT] be stacked,
    because the innermost one wins.

[RFC 6797]: https://www.rfc-editor.org/rfc/rfc6797#section-7.2
[SHOULD NOT]: https://www.ietf.org/rfc/rfc2119.txt
[helmet]: https://helmetjs.github.io/
*/
package helmet
